package postgres

import (
	"context"
	"fmt"

	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type blogsRepo struct{ pool *pgxpool.Pool }

func NewBlogs(pool *pgxpool.Pool) repository.Blogs {
	return &blogsRepo{pool: pool}
}

const selectBlog = `
SELECT b.id::text, b.title, b.author, b.url, b.likes, b.user_id::text, u.username, u.name, b.created_at, b.updated_at
  FROM blogs b
  JOIN users u ON u.id = b.user_id`

func (r *blogsRepo) Create(ctx context.Context, nb models.NewBlog) (models.Blog, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO blogs(id, title, author, url, likes, user_id) VALUES($1,$2,$3,$4,$5,$6)`,
		id, nb.Title, nb.Author, nb.URL, nb.Likes, nb.OwnerID,
	)
	if err != nil {
		return models.Blog{}, fmt.Errorf("db error: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *blogsRepo) GetByID(ctx context.Context, id string) (models.Blog, error) {
	return scanBlog(r.pool.QueryRow(ctx, selectBlog+` WHERE b.id=$1`, id))
}

func (r *blogsRepo) List(ctx context.Context) ([]models.Blog, error) {
	return r.query(ctx, selectBlog+` ORDER BY b.created_at, b.id`)
}

func (r *blogsRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Blog, error) {
	return r.query(ctx, selectBlog+` WHERE b.user_id=$1 ORDER BY b.created_at, b.id`, ownerID)
}

func (r *blogsRepo) Update(ctx context.Context, b models.Blog) (models.Blog, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE blogs SET title=$2, author=$3, url=$4, likes=$5, updated_at=now() WHERE id=$1`,
		b.ID, b.Title, b.Author, b.URL, b.Likes,
	)
	if err != nil {
		if notFound(err) {
			return models.Blog{}, repository.ErrNotFound
		}
		return models.Blog{}, fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Blog{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, b.ID)
}

func (r *blogsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id=$1`, id)
	if err != nil {
		if notFound(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *blogsRepo) query(ctx context.Context, q string, args ...any) ([]models.Blog, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		if notFound(err) {
			return []models.Blog{}, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBlog(row scanner) (models.Blog, error) {
	var (
		b     models.Blog
		owner models.BlogOwner
	)
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes,
		&owner.ID, &owner.Username, &owner.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if notFound(err) {
			return models.Blog{}, repository.ErrNotFound
		}
		return models.Blog{}, fmt.Errorf("db error: %w", err)
	}
	b.User = &owner
	return b, nil
}
