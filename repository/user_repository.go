package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"portfolio-photo-sync/models"
)

// UserRepository reads the users table
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

// FindByEmail looks a user up by email, case-insensitively
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.Owner, error) {
	query := `
		SELECT id, email, COALESCE(name, '') AS name
		FROM users
		WHERE lower(email) = lower($1)
		LIMIT 1
	`

	var owner models.Owner
	err := r.db.QueryRowContext(ctx, query, email).Scan(&owner.ID, &owner.Email, &owner.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &owner, nil
}

// EnsureOwner inserts the owner unless a user with the same email exists.
func (r *UserRepository) EnsureOwner(ctx context.Context, owner *models.Owner) error {
	query := `
		INSERT INTO users (id, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT ((lower(email))) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, owner.ID, owner.Email, owner.Name); err != nil {
		return fmt.Errorf("failed to ensure owner %s: %w", owner.Email, err)
	}
	return nil
}
