// internal/repository/postgres/users_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const selectUser = `SELECT id::text, username, name, password_digest, created_at FROM users`

func (r *usersRepo) Create(ctx context.Context, username, name, digest string) (models.User, error) {
	u := models.User{ID: uuid.NewString(), Username: username, Name: name, PasswordDigest: digest}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users(id, username, name, password_digest) VALUES($1,$2,$3,$4) RETURNING created_at`,
		u.ID, u.Username, u.Name, u.PasswordDigest,
	).Scan(&u.CreatedAt)
	if err != nil {
		if uniqueViolation(err) {
			return models.User{}, fmt.Errorf("username %q: %w", username, repository.ErrConflict)
		}
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE id=$1`, id))
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE username=$1`, username))
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, selectUser+` ORDER BY created_at, id`)
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
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordDigest, &u.CreatedAt)
	if err != nil {
		if notFound(err) {
			return models.User{}, repository.ErrNotFound
		}
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}
