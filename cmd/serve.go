package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"portfolio-photo-sync/app"
	"portfolio-photo-sync/logging"
)

func newServeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin HTTP API",
		Long: `Starts the HTTP server exposing the synchronization trigger:

  POST /admin/photos/sync           run a synchronization (dryRun=true to preview)
  GET  /admin/photos/{id}/preview   downsized JPEG of a catalogued photo
  GET  /ping                        health check
  GET  /metrics                     Prometheus metrics`,
		Example: `  # Listen on the configured port
  photosync serve

  # Local development against the in-memory catalog
  DB_DRIVER=memory SYNC_OWNER_EMAIL=me@example.com photosync serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rt.cfg

			application, err := app.Initialize(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			server := &http.Server{
				Addr:              cfg.Server.Addr(),
				Handler:           application.Handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				logging.Info().Str("addr", server.Addr).Str("env", cfg.Server.Environment).Msg("🚀 Server starting")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				logging.Info().Msg("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logging.Error().Err(err).Msg("Server shutdown failed")
					return err
				}
				logging.Info().Msg("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}
}
