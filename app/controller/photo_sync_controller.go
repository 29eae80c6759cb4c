package controller

import (
	"errors"
	"net/http"
	"strconv"

	"portfolio-photo-sync/logging"
	"portfolio-photo-sync/models"
	"portfolio-photo-sync/service"
)

// PhotoSyncController handles the "synchronize now" admin action
type PhotoSyncController struct {
	syncService service.SyncServiceInterface
}

// NewPhotoSyncController creates a new PhotoSyncController
func NewPhotoSyncController(syncService service.SyncServiceInterface) *PhotoSyncController {
	return &PhotoSyncController{syncService: syncService}
}

// SyncPhotos handles POST /admin/photos/sync
// Optional query parameter dryRun=true reports what would be imported without writing.
func (c *PhotoSyncController) SyncPhotos(w http.ResponseWriter, r *http.Request) {
	var opts service.SyncOptions
	if raw := r.URL.Query().Get("dryRun"); raw != "" {
		dryRun, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.SyncResponse{
				Success: false,
				Error:   "Invalid dryRun parameter",
				Details: err.Error(),
			})
			return
		}
		opts.DryRun = dryRun
	}

	report, err := c.syncService.SyncPhotos(r.Context(), opts)
	if err != nil {
		status, msg := syncErrorStatus(err)
		logging.Error().Err(err).Int("status", status).Msg("❌ Photo synchronization failed")
		writeJSON(w, status, models.SyncResponse{
			Success: false,
			Error:   msg,
			Details: err.Error(),
		})
		return
	}

	stats := report.Stats()
	writeJSON(w, http.StatusOK, models.SyncResponse{
		Success: true,
		Message: report.Message,
		Stats:   &stats,
	})
}

func syncErrorStatus(err error) (int, string) {
	var (
		cfgErr *service.ConfigurationError
		te     *service.TransportError
	)
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest, "Synchronization is not configured"
	case errors.As(err, &te):
		return http.StatusInternalServerError, "Could not reach the media host"
	default:
		return http.StatusInternalServerError, "Failed to synchronize photos"
	}
}
