package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-photo-sync/logging"
	"portfolio-photo-sync/repository"
	"portfolio-photo-sync/service"
)

// PhotoController serves catalogued photos to the admin panel
type PhotoController struct {
	previewService service.PreviewServiceInterface
}

// NewPhotoController creates a new PhotoController
func NewPhotoController(previewService service.PreviewServiceInterface) *PhotoController {
	return &PhotoController{previewService: previewService}
}

// GetPreview handles GET /admin/photos/{id}/preview?size=thumb|medium
func (c *PhotoController) GetPreview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "id parameter is required", http.StatusBadRequest)
		return
	}

	size, err := service.ParsePreviewSize(r.URL.Query().Get("size"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := c.previewService.GetPreview(r.Context(), id, size)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, fmt.Sprintf("photo %s not found", id), http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error().Err(err).Str("photo_id", id).Msg("❌ Failed to render preview")
		http.Error(w, "Failed to render preview", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
