package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"portfolio-photo-sync/logging"
	"portfolio-photo-sync/metrics"
	"portfolio-photo-sync/repository"
)

// maxSourceImageBytes bounds the download of an original image.
const maxSourceImageBytes = 50 << 20

// PreviewService renders downsized JPEG previews of catalogued photos
// Implements PreviewServiceInterface
type PreviewService struct {
	photos repository.PhotoRepositoryInterface
	cache  PreviewCacheInterface
	client *http.Client
}

// NewPreviewService creates a PreviewService. A nil cache disables caching.
func NewPreviewService(photos repository.PhotoRepositoryInterface, cache PreviewCacheInterface, timeout time.Duration) *PreviewService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PreviewService{
		photos: photos,
		cache:  cache,
		client: &http.Client{Timeout: timeout},
	}
}

// Ensure PreviewService implements PreviewServiceInterface
var _ PreviewServiceInterface = (*PreviewService)(nil)

// GetPreview loads the record, serves the cached rendition when present and
// otherwise downloads, resizes and caches the image.
func (s *PreviewService) GetPreview(ctx context.Context, photoID string, size PreviewSize) ([]byte, error) {
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo %s: %w", photoID, err)
	}

	if s.cache != nil {
		if data, err := s.cache.Get(photo.ID, string(size)); err == nil {
			metrics.PreviewCacheLookups.WithLabelValues("hit").Inc()
			return data, nil
		}
		metrics.PreviewCacheLookups.WithLabelValues("miss").Inc()
	}

	original, err := s.download(ctx, photo.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download photo %s: %w", photoID, err)
	}

	optimized, err := OptimizeImage(original, size)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize photo %s: %w", photoID, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(photo.ID, string(size), optimized); err != nil {
			// Serving the preview matters more than caching it.
			logging.Warn().Err(err).Str("photo_id", photo.ID).Msg("⚠️  Failed to cache preview")
		}
	}

	logging.Debug().Str("photo_id", photo.ID).Str("size", string(size)).Int("bytes", len(optimized)).Msg("✓ Preview rendered")
	return optimized, nil
}

func (s *PreviewService) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSourceImageBytes))
}
