// tender-sniper's API server: loads configuration, wires the DI container,
// starts the Monitoring Loop alongside the HTTP surface, and shuts both
// down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nikoly240702/tender-sniper/configs"
	"github.com/nikoly240702/tender-sniper/internal/httpapi"
	"github.com/nikoly240702/tender-sniper/pkg/di"
	"github.com/nikoly240702/tender-sniper/pkg/logger"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.AI.APIKey == "" {
		zlog.Warn("AI.APIKey not set — AI Relevance Checker and Query Expander run in fallback mode")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := di.New(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatalw("failed to build DI container", "error", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			zlog.Errorw("failed to close container", "error", err)
		}
	}()

	router := httpapi.NewRouter(container)
	server := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		zlog.Infow("starting monitoring loop", "poll_interval", cfg.Business.PollInterval)
		if err := container.Monitor.Run(egCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		zlog.Infow("starting http server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		zlog.Info("shutdown signal received, draining http server")
		return server.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Errorw("server stopped with error", "error", err)
		os.Exit(1)
	}

	zlog.Info("tender-sniper api server stopped")
}
