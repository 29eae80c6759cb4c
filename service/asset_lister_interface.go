package service

import (
	"context"

	"portfolio-photo-sync/models"
)

// AssetListerInterface defines the contract for listing a remote media host.
//
// ListAssets returns every image visible under scope, newest first where the
// host allows it, bounded by maxResults. Host failures are *TransportError.
type AssetListerInterface interface {
	ListAssets(ctx context.Context, scope string, maxResults int) ([]models.RemoteAsset, error)
	// Provider names the backend for logs and metrics.
	Provider() string
}
