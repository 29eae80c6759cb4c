package models

import "time"

// SyncStats is the three-number breakdown shown in the admin UI.
type SyncStats struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// SyncReport summarizes one sync run. It is returned to the caller and never stored.
//
// Total counts every listed asset, excluded ones included. Excluded and Failed
// are informational and not part of the HTTP stats object.
type SyncReport struct {
	Synced     int       `json:"synced"`
	Skipped    int       `json:"skipped"`
	Total      int       `json:"total"`
	Excluded   int       `json:"excluded"`
	Failed     int       `json:"failed"`
	DryRun     bool      `json:"dryRun,omitempty"`
	Message    string    `json:"message"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Stats returns the public counters.
func (r *SyncReport) Stats() SyncStats {
	return SyncStats{Synced: r.Synced, Skipped: r.Skipped, Total: r.Total}
}

// ClassificationDecision is the per-asset eligibility verdict.
type ClassificationDecision struct {
	Eligible bool
	Reason   string
}

// SyncResponse is the JSON body of the sync endpoint.
type SyncResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Stats   *SyncStats `json:"stats,omitempty"`
	Error   string     `json:"error,omitempty"`
	Details string     `json:"details,omitempty"`
}
