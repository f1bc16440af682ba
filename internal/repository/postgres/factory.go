package postgres

import (
	"errors"

	repo "github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users repo.Users
	Blogs repo.Blogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users: &usersRepo{pool},
		Blogs: &blogsRepo{pool},
	}
}

type scanner interface {
	Scan(dest ...any) error
}

// notFound reports whether err means the row does not exist. Ids that are not
// valid uuids (invalid_text_representation) cannot exist either.
func notFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
