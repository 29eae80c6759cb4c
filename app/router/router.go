package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portfolio-photo-sync/app/controller"
	"portfolio-photo-sync/config"
	"portfolio-photo-sync/logging"
)

type Controllers struct {
	Health    *controller.HealthController
	PhotoSync *controller.PhotoSyncController
	Photo     *controller.PhotoController
}

// rateLimitedHandler answers in the sync response shape so the admin UI can
// show the banner as for any other failure.
func rateLimitedHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"success":false,"error":"Too many synchronization requests, try again later"}`))
}

// NewRouter builds the HTTP handler tree.
func NewRouter(security config.SecurityConfig, controllers *Controllers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: security.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))

	health := controllers.Health
	if health == nil {
		health = controller.NewHealthController(nil)
	}
	r.Get("/ping", health.Ping)
	r.Handle("/metrics", promhttp.Handler())

	syncLimit := func(next http.Handler) http.Handler { return next }
	if !security.DisableRateLimit && security.SyncRateLimit > 0 {
		syncLimit = httprate.Limit(
			security.SyncRateLimit,
			security.SyncRateWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(rateLimitedHandler),
		)
	}

	r.Group(func(r chi.Router) {
		r.Use(syncLimit)
		r.Post("/admin/photos/sync", controllers.PhotoSync.SyncPhotos)
		r.Post("/api/photos/sync", controllers.PhotoSync.SyncPhotos)
	})

	r.Get("/admin/photos/{id}/preview", controllers.Photo.GetPreview)

	return r
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			logging.Info().
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		}()
		next.ServeHTTP(ww, r)
	})
}
