package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/baharkarakas/bloglist-backend/internal/apperr"
	"github.com/baharkarakas/bloglist-backend/internal/metrics"
	"github.com/baharkarakas/bloglist-backend/internal/models"
	repo "github.com/baharkarakas/bloglist-backend/internal/repository"
)

const msgBlogNotFound = "blog not found"

type BlogService struct{ blogs repo.Blogs }

func NewBlogService(b repo.Blogs) *BlogService { return &BlogService{blogs: b} }

func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (models.Blog, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Blog{}, apperr.NotFound(msgBlogNotFound)
	}
	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return models.Blog{}, storeErr(err, "get blog")
	}
	return b, nil
}

// Create stores nb owned by the caller.
func (s *BlogService) Create(ctx context.Context, nb models.NewBlog, who models.Identity) (models.Blog, error) {
	nb.OwnerID = who.UserID
	b, err := s.blogs.Create(ctx, nb)
	if err != nil {
		return models.Blog{}, fmt.Errorf("create blog: %w", err)
	}
	metrics.BlogOperations.WithLabelValues("create").Inc()
	return b, nil
}

// Update merges patch into the stored blog. No ownership check applies.
func (s *BlogService) Update(ctx context.Context, id string, patch models.BlogPatch) (models.Blog, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return models.Blog{}, err
	}
	patch.Apply(&b)
	updated, err := s.blogs.Update(ctx, b)
	if err != nil {
		return models.Blog{}, storeErr(err, "update blog")
	}
	metrics.BlogOperations.WithLabelValues("update").Inc()
	return updated, nil
}

// Delete removes the blog when who owns it.
func (s *BlogService) Delete(ctx context.Context, id string, who models.Identity) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.OwnerID() != who.UserID {
		metrics.AuthFailures.WithLabelValues("forbidden").Inc()
		return apperr.Forbidden("only the creator can delete a blog")
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return storeErr(err, "delete blog")
	}
	metrics.BlogOperations.WithLabelValues("delete").Inc()
	return nil
}

func storeErr(err error, op string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound(msgBlogNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
