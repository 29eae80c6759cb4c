package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-photo-sync/app/controller"
	"portfolio-photo-sync/config"
	"portfolio-photo-sync/models"
	"portfolio-photo-sync/repository"
	"portfolio-photo-sync/service"
)

type okSync struct{}

func (okSync) SyncPhotos(context.Context, service.SyncOptions) (*models.SyncReport, error) {
	return &models.SyncReport{Message: service.MessageNothingToSync}, nil
}

func newTestRouter(security config.SecurityConfig) http.Handler {
	previews := service.NewPreviewService(repository.NewMemoryPhotoRepository(), nil, time.Second)
	return NewRouter(security, &Controllers{
		PhotoSync: controller.NewPhotoSyncController(okSync{}),
		Photo:     controller.NewPhotoController(previews),
	})
}

func TestRoutes(t *testing.T) {
	h := newTestRouter(config.SecurityConfig{CORSOrigins: []string{"*"}, DisableRateLimit: true})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/ping", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/admin/photos/sync", http.StatusOK},
		{http.MethodPost, "/api/photos/sync", http.StatusOK},
		{http.MethodGet, "/admin/photos/sync", http.StatusMethodNotAllowed},
		{http.MethodGet, "/admin/photos/unknown/preview", http.StatusNotFound},
		{http.MethodGet, "/admin/photos/unknown/preview?size=giant", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, http.NoBody))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestSyncRateLimit(t *testing.T) {
	h := newTestRouter(config.SecurityConfig{
		CORSOrigins:    []string{"*"},
		SyncRateLimit:  1,
		SyncRateWindow: time.Minute,
	})

	send := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/photos/sync", http.NoBody)
		req.RemoteAddr = "203.0.113.7:5555"
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(); rec.Code != http.StatusOK {
		t.Fatalf("first call status = %d, want 200", rec.Code)
	}
	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second call status = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestPingReportsRemoteState(t *testing.T) {
	previews := service.NewPreviewService(repository.NewMemoryPhotoRepository(), nil, time.Second)
	h := NewRouter(config.SecurityConfig{DisableRateLimit: true}, &Controllers{
		Health:    controller.NewHealthController(func() string { return "open" }),
		PhotoSync: controller.NewPhotoSyncController(okSync{}),
		Photo:     controller.NewPhotoController(previews),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"remote":"open"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
