package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/atmosphere-weather/internal/api/http"
	"github.com/i474232898/atmosphere-weather/internal/config"
	"github.com/i474232898/atmosphere-weather/internal/observability"
	"github.com/i474232898/atmosphere-weather/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the favorites refresh scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comps, err := buildComponents(ctx, cfg, metrics, logger)
	if err != nil {
		return err
	}
	defer comps.close(context.Background())
	defer comps.service.WaitForWrites()

	// Scheduler that periodically refreshes favorites into the cache.
	sched := scheduler.New(comps.service, comps.favorites, cfg.RefreshInterval, cfg.RefreshConcurrency, metrics, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(&httpapi.Handlers{
		Weather:   comps.service,
		Favorites: comps.favorites,
		Insights:  comps.insights,
		Logger:    logger,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		errCh <- app.Listen(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("fiber server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
	return nil
}
