package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-photo-sync/config"
	"portfolio-photo-sync/service"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: "memory"},
		Remote: config.RemoteConfig{
			Provider:   "cloudinary",
			CloudName:  "demo",
			APIKey:     "key",
			APISecret:  "secret",
			BaseURL:    "http://127.0.0.1:1",
			Folder:     "portfolio",
			PageSize:   100,
			MaxResults: 100,
		},
		Sync:     config.SyncConfig{OwnerEmail: "owner@example.com"},
		Security: config.SecurityConfig{CORSOrigins: []string{"*"}, DisableRateLimit: true},
	}
}

func TestInitializeMemoryStore(t *testing.T) {
	a, err := Initialize(context.Background(), memoryConfig())
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Errorf("/ping status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"remote":"closed"`) {
		t.Errorf("/ping body = %s, want the lister circuit state", rec.Body.String())
	}
}

func TestInitializeUnreachableHostIsTransportError(t *testing.T) {
	a, err := Initialize(context.Background(), memoryConfig())
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/photos/sync", http.NoBody))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("sync status = %d, want 500 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestNewLister(t *testing.T) {
	l, err := NewLister(context.Background(), memoryConfig().Remote)
	if err != nil {
		t.Fatalf("NewLister() error = %v", err)
	}
	if _, ok := l.(*service.CloudinaryService); !ok {
		t.Errorf("NewLister() = %T, want *service.CloudinaryService", l)
	}

	missing := memoryConfig().Remote
	missing.APISecret = ""
	if _, err := NewLister(context.Background(), missing); err == nil {
		t.Error("NewLister() without api secret: error = nil")
	}
}
