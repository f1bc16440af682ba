package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/bloglist-backend/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Users is the credential store.
type Users interface {
	Create(ctx context.Context, username, name, passwordDigest string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// Blogs is the blog store. Implementations keep single-record operations atomic.
type Blogs interface {
	Create(ctx context.Context, b models.NewBlog) (models.Blog, error)
	GetByID(ctx context.Context, id string) (models.Blog, error)
	List(ctx context.Context) ([]models.Blog, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Blog, error)
	Update(ctx context.Context, b models.Blog) (models.Blog, error)
	Delete(ctx context.Context, id string) error
}
