package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"datalayer/internal/datalayer/adapters/inline"
	"datalayer/internal/datalayer/models"
	"datalayer/internal/datalayer/providers"
	"datalayer/internal/datalayer/service"
	dErrors "datalayer/pkg/domain-errors"
	"datalayer/pkg/identity/contact"
	"datalayer/pkg/platform/httputil"
	"datalayer/pkg/requestcontext"
)

// Service defines the interface for data layer operations.
type Service interface {
	Build(ctx context.Context, set providers.Set, req service.Request) (models.Snapshot, models.Payload)
	EnrichContact(ctx context.Context, b contact.Block) contact.Block
}

// Renderer writes the bootstrap script at most once per request.
type Renderer interface {
	Write(ctx context.Context, w io.Writer, snap models.Snapshot, payload models.Payload) (bool, error)
}

// Handler wires data layer endpoints to the service.
type Handler struct {
	service  Service
	renderer Renderer
	site     providers.SiteProvider
	theme    providers.ThemeProvider
	logger   *slog.Logger
}

type Option func(*Handler)

// WithSiteDefaults serves site and theme from fallback providers when a
// request does not post them.
func WithSiteDefaults(site providers.SiteProvider, theme providers.ThemeProvider) Option {
	return func(h *Handler) {
		h.site = site
		h.theme = theme
	}
}

// New constructs a data layer handler with its dependencies.
func New(service Service, renderer Renderer, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:  service,
		renderer: renderer,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts data layer endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/datalayer", h.HandleDataLayer)
	r.Post("/v1/datalayer/script", h.HandleScript)
	r.Post("/v1/identity/contact", h.HandleContact)
}

// HandleDataLayer handles POST /v1/datalayer requests.
func (h *Handler) HandleDataLayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[DataLayerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	snap, payload := h.build(ctx, req)
	httputil.WriteJSON(w, http.StatusOK, DataLayerResponse{Snapshot: snap, Payload: payload})
}

// HandleScript handles POST /v1/datalayer/script requests. The response is
// the script element ready to be placed in the page head.
func (h *Handler) HandleScript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[DataLayerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	snap, payload := h.build(ctx, req)

	var buf bytes.Buffer
	written, err := h.renderer.Write(ctx, &buf, snap, payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to render data layer script",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to render script"))
		return
	}
	if !written {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.WarnContext(ctx, "failed to write script response",
			"request_id", requestID,
			"error", err,
		)
	}
}

// HandleContact handles POST /v1/identity/contact requests.
func (h *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ContactRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.service.EnrichContact(ctx, req.Block()))
}

func (h *Handler) build(ctx context.Context, req *DataLayerRequest) (models.Snapshot, models.Payload) {
	start := time.Now()
	adapter := inline.New(req.Body)

	set := adapter.Set()
	if set.Site == nil && h.site != nil {
		set.Site = h.site
	}
	if set.Theme == nil && h.theme != nil {
		set.Theme = h.theme
	}

	snap, payload := h.service.Build(ctx, set, adapter.Request())

	h.logger.InfoContext(ctx, "data layer assembled",
		"request_id", requestcontext.RequestID(ctx),
		"failed_sources", len(snap.Errors),
		"has_commerce", set.Commerce != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap, payload
}
