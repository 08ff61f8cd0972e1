package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/dynoslide"
	"github.com/aretw0/dynoslide/internal/config"
	httpAdapter "github.com/aretw0/dynoslide/pkg/adapters/http"
	"github.com/aretw0/dynoslide/pkg/observability"
)

// ServeOptions configures Serve.
type ServeOptions struct {
	Config  config.Config
	Logger  *slog.Logger
	Version string

	// Listener overrides Config.Server.Addr, mainly for tests.
	Listener net.Listener
	// Ready, when set, receives the bound address once the server accepts connections.
	Ready chan<- string
}

// Serve runs the HTTP API until ctx is cancelled, then drains in-flight
// requests and generation runs within the configured shutdown timeout.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg, logger := opts.Config, opts.Logger

	metrics := observability.NewMetrics()
	streams := httpAdapter.NewStreamManager()

	engine, cleanup, err := createEngine(cfg, logger,
		dynoslide.WithGenerationHooks(observability.LogHooks(logger)),
		dynoslide.WithGenerationHooks(metrics.Hooks()),
		dynoslide.WithGenerationHooks(streams.Hooks()),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Warn("failed to release storage", "err", err)
		}
	}()

	api := httpAdapter.NewServer(engine.Catalog(), engine.Carousels(), engine.Assets(),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithStreams(streams),
		httpAdapter.WithMetrics(metrics.Handler()),
		httpAdapter.WithCORSOrigins(cfg.Server.CORSOrigins),
		httpAdapter.WithMaxUploadBytes(int64(cfg.Server.MaxUploadBytes)),
		httpAdapter.WithVersion(opts.Version),
	)
	handler, err := api.Handler()
	if err != nil {
		return fmt.Errorf("invalid API description: %w", err)
	}

	ln := opts.Listener
	if ln == nil {
		if ln, err = net.Listen("tcp", cfg.Server.Addr); err != nil {
			return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
		}
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("dynoslide server listening", "address", ln.Addr().String(), "storage", cfg.Storage.Driver)
		serverErrors <- srv.Serve(ln)
	}()
	if opts.Ready != nil {
		opts.Ready <- ln.Addr().String()
	}

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = engine.Close(context.Background())
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown started")
	// Give outstanding requests and runs a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("graceful shutdown did not complete: %w", err))
		if err := srv.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := engine.Close(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("generation runs still in flight: %w", err))
	}
	if len(errs) == 0 {
		logger.Info("dynoslide server stopped gracefully")
	}
	return errors.Join(errs...)
}
