package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/baharkarakas/bloglist-backend/internal/apperr"
	"github.com/baharkarakas/bloglist-backend/internal/models"
	repo "github.com/baharkarakas/bloglist-backend/internal/repository"
)

type UserService struct {
	users  repo.Users
	blogs  repo.Blogs
	hasher PasswordHasher
}

func NewUserService(u repo.Users, b repo.Blogs, h PasswordHasher) *UserService {
	return &UserService{users: u, blogs: b, hasher: h}
}

// Register stores a new user with a digest of password. Input is expected to
// be validated already; a taken username is a conflict.
func (s *UserService) Register(ctx context.Context, username, name, password string) (models.User, error) {
	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, username, name, digest)
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return models.User{}, apperr.Conflict("username must be unique", err)
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// List returns every user together with the blogs they own.
func (s *UserService) List(ctx context.Context) ([]models.UserWithBlogs, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	byOwner := map[string][]models.BlogSummary{}
	for _, b := range blogs {
		byOwner[b.OwnerID()] = append(byOwner[b.OwnerID()], b.Summary())
	}
	out := make([]models.UserWithBlogs, 0, len(users))
	for _, u := range users {
		owned := byOwner[u.ID]
		if owned == nil {
			owned = []models.BlogSummary{}
		}
		out = append(out, models.UserWithBlogs{User: u, Blogs: owned})
	}
	return out, nil
}

// Get returns one user with the blogs they own.
func (s *UserService) Get(ctx context.Context, id string) (models.UserWithBlogs, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.UserWithBlogs{}, apperr.NotFound("user not found")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.UserWithBlogs{}, apperr.NotFound("user not found")
		}
		return models.UserWithBlogs{}, fmt.Errorf("get user: %w", err)
	}
	blogs, err := s.blogs.ListByOwner(ctx, u.ID)
	if err != nil {
		return models.UserWithBlogs{}, fmt.Errorf("list user blogs: %w", err)
	}
	owned := make([]models.BlogSummary, 0, len(blogs))
	for _, b := range blogs {
		owned = append(owned, b.Summary())
	}
	return models.UserWithBlogs{User: u, Blogs: owned}, nil
}
