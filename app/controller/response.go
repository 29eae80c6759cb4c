package controller

import (
	"net/http"

	"github.com/goccy/go-json"

	"portfolio-photo-sync/logging"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}
