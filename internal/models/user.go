package models

import (
	"time"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	PasswordDigest string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserWithBlogs is the listing shape of GET /api/users.
type UserWithBlogs struct {
	User
	Blogs []BlogSummary `json:"blogs"`
}

// Identity is the authenticated caller resolved from a token.
type Identity struct {
	UserID   string
	Username string
}
