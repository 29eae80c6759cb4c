package service

import (
	"context"

	"portfolio-photo-sync/models"
)

// SyncOptions tunes a single run.
type SyncOptions struct {
	// DryRun classifies and checks for duplicates but writes nothing.
	DryRun bool
}

// SyncServiceInterface defines the contract for photo synchronization
type SyncServiceInterface interface {
	// SyncPhotos imports every new eligible remote asset into the catalog.
	// Per-asset failures are counted in the report; only configuration and
	// transport failures (and cancellation) return an error.
	SyncPhotos(ctx context.Context, opts SyncOptions) (*models.SyncReport, error)
}
