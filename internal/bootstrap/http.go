package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/recruit-board/config"
	httpx "github.com/target/recruit-board/internal/http"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	HTTP     config.HTTPConfig
	Services ServiceContainer
	DB       *sql.DB
	Logger   *slog.Logger
}

// NewHTTPServer builds the HTTP server without starting it.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	addr := cfg.HTTP.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:              addr,
		Handler:           buildHTTPHandler(cfg, logger),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func buildHTTPHandler(cfg *HTTPServerConfig, logger *slog.Logger) http.Handler {
	return httpx.NewRouter(httpx.RouterServices{
		Users:          cfg.Services.Users,
		Tasks:          cfg.Services.Tasks,
		Resumes:        cfg.Services.Resumes,
		Files:          cfg.Services.Files,
		HealthChecks:   healthChecks(cfg),
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		Logger:         logger,
	})
}

func healthChecks(cfg *HTTPServerConfig) map[string]httpx.HealthCheck {
	checks := make(map[string]httpx.HealthCheck, 3)
	if cfg.DB != nil {
		checks["database"] = cfg.DB.PingContext
	}
	if cfg.Services.Resumes != nil {
		checks["storage"] = cfg.Services.Resumes.Health
	}
	if cfg.Services.Cache != nil {
		checks["cache"] = cfg.Services.Cache.Health
	}
	return checks
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}
