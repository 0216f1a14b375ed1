package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Run serves HTTP until ctx is canceled, SIGINT or SIGTERM arrives, or the
// server fails. Shutdown waits up to cfg.HTTP.ShutdownTimeout for in-flight
// requests.
func Run(ctx context.Context, cfg *HTTPServerConfig) error {
	if cfg == nil {
		return errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := NewHTTPServer(cfg)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		// Detach from the canceled context so in-flight requests can finish.
		return ShutdownHTTPServer(context.WithoutCancel(gctx), server, cfg.HTTP.ShutdownTimeout, logger)
	})

	return g.Wait()
}
