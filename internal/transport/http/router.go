package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"datalayer/internal/datalayer/emit"
	"datalayer/internal/platform/metrics"
	"datalayer/internal/platform/middleware"
	"datalayer/pkg/platform/httputil"
	"datalayer/pkg/platform/middleware/metadata"
	"datalayer/pkg/platform/middleware/requestid"
	"datalayer/pkg/platform/middleware/requesttime"
)

// Registrar mounts a group of endpoints.
type Registrar interface {
	Register(r chi.Router)
}

// Config holds the cross-cutting settings of the router.
type Config struct {
	// ServiceToken guards the /v1 routes when non-empty.
	ServiceToken string
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	// MetricsHandler is served on /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter wires the public endpoints. Every request gets a request id, a
// request time and the browser metadata in its context; API routes also
// get an emission guard so the bootstrap script is written once.
func NewRouter(cfg Config, routes ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(cfg.Metrics.Middleware)

	r.Get("/healthz", handleHealth)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireServiceToken(cfg.ServiceToken, cfg.Logger))
		r.Use(emit.Middleware)
		for _, route := range routes {
			route.Register(r)
		}
	})
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
