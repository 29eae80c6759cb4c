package repository

import (
	"context"

	"portfolio-photo-sync/models"
)

// PhotoRepositoryInterface defines the catalog operations the synchronizer needs.
// Implementations must be safe for concurrent callers: the admin panel may
// insert photos while a sync runs.
type PhotoRepositoryInterface interface {
	// ExistsByExternalID returns false, nil when no row matches.
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
	// Insert never upserts; a taken external id yields an error wrapping ErrDuplicate.
	Insert(ctx context.Context, photo *models.Photo) error
	// GetByID returns ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*models.Photo, error)
}

// UserRepositoryInterface resolves the catalog owner.
type UserRepositoryInterface interface {
	// FindByEmail returns ErrNotFound when no user has that email.
	FindByEmail(ctx context.Context, email string) (*models.Owner, error)
}
