// Command server runs the analytics HTTP service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/goanalytics"
	"github.com/sartorproj/goanalytics/internal/api"
	"github.com/sartorproj/goanalytics/internal/config"
	"github.com/sartorproj/goanalytics/internal/insight"
)

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	engine := goanalytics.NewEngine()
	if cfg.ForestTrees > 0 {
		engine.Forest.Trees = cfg.ForestTrees
	}
	engine.Forest.Seed = cfg.ForestSeed

	insightClient := insight.New(insight.Options{
		URL:        cfg.InsightURL,
		APIKey:     cfg.InsightAPIKey,
		Timeout:    cfg.InsightTimeout,
		MaxRetries: cfg.InsightMaxRetries,
	})
	if insightClient.Enabled() {
		logger.Info("insight proxy enabled", "url", cfg.InsightURL)
	}

	server := api.New(engine, insightClient, logger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Router(cfg.CORSOrigins),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout,
	}

	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info("starting analytics server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down analytics server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
