// Package repository provides user persistence for the auth module.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fashionos_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is an account row as the auth module sees it.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     *string
	UserType     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository provides user lookups against Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, email, password_hash, full_name, user_type, is_active, created_at, updated_at`

// GetByEmail finds an active user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE lower(email) = lower($1)`, userColumns)

	var u User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.UserType, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return User{}, fmt.Errorf("query user by email: %w", err)
	}
	return u, nil
}

// GetByID finds a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	var u User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.UserType, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return User{}, fmt.Errorf("query user by id: %w", err)
	}
	return u, nil
}
