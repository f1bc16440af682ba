// Package sqlite implements the stores on an embedded SQLite database
// (modernc.org/sqlite). Timestamps are stored as unix nanoseconds.
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	repo "github.com/baharkarakas/bloglist-backend/internal/repository"
)

type Repositories struct {
	Users repo.Users
	Blogs repo.Blogs
}

func NewRepositories(db *sql.DB) Repositories {
	return Repositories{
		Users: &usersRepo{db},
		Blogs: &blogsRepo{db},
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func uniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY")
}

func fromNanos(n int64) time.Time { return time.Unix(0, n).UTC() }
