package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"datalayer/internal/datalayer/models"
	"datalayer/internal/datalayer/page"
)

// Server captures process level configuration.
type Server struct {
	Addr     string
	LogLevel slog.Level

	// ServiceToken, when set, is required in X-Service-Token on /v1 routes.
	ServiceToken string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	DataLayer DataLayer
}

// DataLayer captures snapshot assembly settings.
type DataLayer struct {
	SchemaVersion  string
	PostDateLayout string
	// SiteConfigPath points at an optional YAML site descriptor.
	SiteConfigPath string
	RedactClientIP bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("DATALAYER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	shutdown := 10 * time.Second
	if v := os.Getenv("DATALAYER_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			shutdown = d
		}
	}

	version := os.Getenv("DATALAYER_SCHEMA_VERSION")
	if version == "" {
		version = models.DefaultSchemaVersion
	}
	layout := os.Getenv("DATALAYER_POST_DATE_LAYOUT")
	if layout == "" {
		layout = page.DefaultDateLayout
	}

	return Server{
		Addr:            addr,
		LogLevel:        ParseLevel(os.Getenv("DATALAYER_LOG_LEVEL")),
		ServiceToken:    os.Getenv("DATALAYER_SERVICE_TOKEN"),
		ShutdownTimeout: shutdown,
		DataLayer: DataLayer{
			SchemaVersion:  version,
			PostDateLayout: layout,
			SiteConfigPath: os.Getenv("DATALAYER_SITE_CONFIG"),
			RedactClientIP: os.Getenv("DATALAYER_REDACT_CLIENT_IP") == "true",
		},
	}
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
