package service

import "context"

// PreviewServiceInterface defines the contract for rendering catalog photo previews
type PreviewServiceInterface interface {
	// GetPreview returns JPEG bytes for the photo. Unknown ids yield an error
	// wrapping repository.ErrNotFound.
	GetPreview(ctx context.Context, photoID string, size PreviewSize) ([]byte, error)
}

// PreviewCacheInterface is the byte store behind the preview service.
// Get returns an error for misses; the service does not distinguish misses
// from failures.
type PreviewCacheInterface interface {
	Get(photoID, size string) ([]byte, error)
	Set(photoID, size string, data []byte) error
}
