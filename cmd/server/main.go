package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"datalayer/internal/datalayer/adapters/descriptor"
	"datalayer/internal/datalayer/emit"
	"datalayer/internal/datalayer/filters"
	"datalayer/internal/datalayer/handler"
	dlmetrics "datalayer/internal/datalayer/metrics"
	"datalayer/internal/datalayer/service"
	"datalayer/internal/platform/config"
	"datalayer/internal/platform/httpserver"
	"datalayer/internal/platform/logger"
	httpmetrics "datalayer/internal/platform/metrics"
	httptransport "datalayer/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Assembly logic lives in internal/datalayer.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	dataLayerMetrics := dlmetrics.New()
	requestMetrics := httpmetrics.New()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(dataLayerMetrics),
		service.WithConfig(service.Config{
			SchemaVersion: cfg.DataLayer.SchemaVersion,
			DateLayout:    cfg.DataLayer.PostDateLayout,
		}),
	}
	if cfg.DataLayer.RedactClientIP {
		opts = append(opts, service.WithSnapshotFilter(filters.RedactClientIP))
	}
	svc := service.New(opts...)

	var handlerOpts []handler.Option
	if path := cfg.DataLayer.SiteConfigPath; path != "" {
		d, err := descriptor.LoadFile(path)
		if err != nil {
			log.Error("failed to load site descriptor", "path", path, "error", err)
			os.Exit(1)
		}
		handlerOpts = append(handlerOpts, handler.WithSiteDefaults(d, d))
	}
	dataLayerHandler := handler.New(svc, emit.NewRenderer(log, dataLayerMetrics), log, handlerOpts...)

	router := httptransport.NewRouter(httptransport.Config{
		ServiceToken:   cfg.ServiceToken,
		Logger:         log,
		Metrics:        requestMetrics,
		MetricsHandler: promhttp.Handler(),
	}, dataLayerHandler)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting datalayer", "addr", cfg.Addr, "schema_version", cfg.DataLayer.SchemaVersion)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
