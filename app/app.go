// Package app wires configuration, stores, listers and services into a
// runnable application.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"portfolio-photo-sync/app/controller"
	"portfolio-photo-sync/app/router"
	"portfolio-photo-sync/cache"
	"portfolio-photo-sync/config"
	"portfolio-photo-sync/db"
	"portfolio-photo-sync/logging"
	"portfolio-photo-sync/models"
	"portfolio-photo-sync/repository"
	"portfolio-photo-sync/service"
)

// App holds the initialized components.
type App struct {
	Config  *config.Config
	Sync    service.SyncServiceInterface
	Handler http.Handler

	conn     *sql.DB
	previews *cache.PreviewCache
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	photos, users, err := a.openStores(ctx)
	if err != nil {
		return nil, err
	}

	lister, err := NewLister(ctx, cfg.Remote)
	if err != nil {
		a.Close()
		return nil, err
	}

	breaker := service.NewBreakerLister(lister, service.DefaultBreakerSettings())
	classifier := service.NewClassifierFromConfig(cfg.Sync)
	for _, rule := range classifier.Rules() {
		logging.Info().Str("kind", string(rule.Kind)).Str("value", rule.Value).Msg("🚫 Exclusion rule active")
	}

	syncService := service.NewSyncService(
		breaker,
		photos,
		users,
		classifier,
		service.NewRecordBuilder(),
		service.SyncSettings{
			OwnerEmail: cfg.Sync.OwnerEmail,
			Scope:      cfg.Remote.Folder,
			MaxResults: cfg.Remote.MaxResults,
		},
	)
	a.Sync = syncService

	var previewCache service.PreviewCacheInterface
	if cfg.Cache.Enabled {
		a.previews, err = cache.Open(cfg.Cache.Path, cfg.Cache.TTL)
		if err != nil {
			a.Close()
			return nil, err
		}
		previewCache = a.previews
	}
	previewService := service.NewPreviewService(photos, previewCache, cfg.Remote.Timeout)

	a.Handler = router.NewRouter(cfg.Security, &router.Controllers{
		Health:    controller.NewHealthController(func() string { return breaker.State().String() }),
		PhotoSync: controller.NewPhotoSyncController(syncService),
		Photo:     controller.NewPhotoController(previewService),
	})

	logging.Info().
		Str("database", cfg.Database.Driver).
		Str("provider", lister.Provider()).
		Str("scope", cfg.Remote.Folder).
		Msg("✓ Application initialized")
	return a, nil
}

func (a *App) openStores(ctx context.Context) (repository.PhotoRepositoryInterface, repository.UserRepositoryInterface, error) {
	if a.Config.Database.Driver == "memory" {
		users := repository.NewMemoryUserRepository()
		if email := a.Config.Sync.OwnerEmail; email != "" {
			users.Add(models.Owner{ID: uuid.Must(uuid.NewV7()).String(), Email: email, Name: "Owner"})
		}
		logging.Warn().Msg("⚠️  Using the in-memory catalog; photos are lost on restart")
		return repository.NewMemoryPhotoRepository(), users, nil
	}

	conn, err := db.Open(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.conn = conn
	return repository.NewPhotoRepository(conn), repository.NewUserRepository(conn), nil
}

// NewLister validates the remote section and builds the configured media
// host client.
func NewLister(ctx context.Context, cfg config.RemoteConfig) (service.AssetListerInterface, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid remote configuration: %w", err)
	}
	if cfg.Provider == "drive" {
		return service.NewDriveService(ctx, cfg)
	}
	cld, err := service.NewCloudinaryService(cfg)
	if err != nil {
		return nil, err
	}
	return cld, nil
}

// Close releases the database connection and the preview cache.
func (a *App) Close() {
	if a.previews != nil {
		if err := a.previews.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close preview cache")
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close database")
		}
	}
}
