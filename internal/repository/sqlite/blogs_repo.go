package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/google/uuid"
)

type blogsRepo struct{ db *sql.DB }

const selectBlog = `
SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, u.username, u.name, b.created_at, b.updated_at
  FROM blogs b
  JOIN users u ON u.id = b.user_id`

func (r *blogsRepo) Create(ctx context.Context, nb models.NewBlog) (models.Blog, error) {
	id := uuid.NewString()
	now := time.Now().UTC().UnixNano()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blogs(id, title, author, url, likes, user_id, created_at, updated_at) VALUES(?,?,?,?,?,?,?,?)`,
		id, nb.Title, nb.Author, nb.URL, nb.Likes, nb.OwnerID, now, now,
	)
	if err != nil {
		return models.Blog{}, fmt.Errorf("db error: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *blogsRepo) GetByID(ctx context.Context, id string) (models.Blog, error) {
	return scanBlog(r.db.QueryRowContext(ctx, selectBlog+` WHERE b.id=?`, id))
}

func (r *blogsRepo) List(ctx context.Context) ([]models.Blog, error) {
	return r.query(ctx, selectBlog+` ORDER BY b.created_at, b.rowid`)
}

func (r *blogsRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Blog, error) {
	return r.query(ctx, selectBlog+` WHERE b.user_id=? ORDER BY b.created_at, b.rowid`, ownerID)
}

func (r *blogsRepo) Update(ctx context.Context, b models.Blog) (models.Blog, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE blogs SET title=?, author=?, url=?, likes=?, updated_at=? WHERE id=?`,
		b.Title, b.Author, b.URL, b.Likes, time.Now().UTC().UnixNano(), b.ID,
	)
	if err != nil {
		return models.Blog{}, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Blog{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, b.ID)
}

func (r *blogsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *blogsRepo) query(ctx context.Context, q string, args ...any) ([]models.Blog, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
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
		b                models.Blog
		owner            models.BlogOwner
		author           sql.NullString
		created, updated int64
	)
	err := row.Scan(&b.ID, &b.Title, &author, &b.URL, &b.Likes,
		&owner.ID, &owner.Username, &owner.Name, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Blog{}, repository.ErrNotFound
		}
		return models.Blog{}, fmt.Errorf("db error: %w", err)
	}
	if author.Valid {
		b.Author = &author.String
	}
	b.User = &owner
	b.CreatedAt = fromNanos(created)
	b.UpdatedAt = fromNanos(updated)
	return b, nil
}
