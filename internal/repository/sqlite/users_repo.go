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

type usersRepo struct{ db *sql.DB }

const selectUser = `SELECT id, username, name, password_digest, created_at FROM users`

func (r *usersRepo) Create(ctx context.Context, username, name, digest string) (models.User, error) {
	now := time.Now().UTC()
	u := models.User{ID: uuid.NewString(), Username: username, Name: name, PasswordDigest: digest, CreatedAt: now}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users(id, username, name, password_digest, created_at) VALUES(?,?,?,?,?)`,
		u.ID, u.Username, u.Name, u.PasswordDigest, now.UnixNano(),
	)
	if err != nil {
		if uniqueViolation(err) {
			return models.User{}, fmt.Errorf("username %q: %w", username, repository.ErrConflict)
		}
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id=?`, id))
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE username=?`, username))
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row scanner) (models.User, error) {
	var (
		u       models.User
		created int64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordDigest, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, repository.ErrNotFound
		}
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
	u.CreatedAt = fromNanos(created)
	return u, nil
}
