package controller

import (
	"net/http"
)

// HealthController answers liveness checks
type HealthController struct {
	remoteState func() string
}

// NewHealthController creates a HealthController. remoteState reports the
// circuit state of the media host lister; nil leaves it out of the response.
func NewHealthController(remoteState func() string) *HealthController {
	return &HealthController{remoteState: remoteState}
}

// HealthResponse is the /ping body
type HealthResponse struct {
	Status string `json:"status"`
	Remote string `json:"remote,omitempty"`
}

// Ping handles GET /ping. An open circuit still answers 200, marked degraded,
// since the catalog itself keeps serving.
func (c *HealthController) Ping(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if c.remoteState != nil {
		resp.Remote = c.remoteState()
		if resp.Remote == "open" {
			resp.Status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
