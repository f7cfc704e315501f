package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ani232003/IRCTC/internal/model"
)

// UserRepository is the Postgres implementation of the account store.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUser inserts a new account row.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, full_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.FullName, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("users: insert %s: %w", u.Email, err)
	}
	return nil
}

// UserByEmail returns the account for the email, or (nil, nil) when no
// such account exists.
func (r *UserRepository) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: lookup %s: %w", email, err)
	}
	return &u, nil
}
