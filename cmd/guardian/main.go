package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Guardian/internal/api"
	"github.com/MikeSquared-Agency/Guardian/internal/config"
	"github.com/MikeSquared-Agency/Guardian/internal/hermes"
	"github.com/MikeSquared-Agency/Guardian/internal/ledger"
	"github.com/MikeSquared-Agency/Guardian/internal/metrics"
	"github.com/MikeSquared-Agency/Guardian/internal/pipeline"
	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// Hermes (optional)
	var hermesClient hermes.Client = hermes.NoopClient{}
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	rec := metrics.New(prometheus.DefaultRegisterer)

	// Ledger relay (optional). lc stays a nil interface when disabled so the
	// contract routes can detect it.
	var lc ledger.Client
	var sink pipeline.LedgerSink
	if cfg.Ledger.Enabled {
		client := ledger.NewHTTPClient(cfg.Ledger.URL, ledger.Options{
			Token:         cfg.Ledger.Token,
			ContractIndex: cfg.Ledger.ContractIndex,
			Timeout:       cfg.LedgerTimeout(),
			RetryCount:    cfg.Ledger.RetryCount,
		})
		lc = client

		pub := ledger.NewPublisher(client, hermesClient, rec, cfg.Ledger.QueueSize, cfg.LedgerTimeout(), logger)
		pub.Start(ctx)
		defer pub.Stop()
		sink = pub
		logger.Info("ledger publisher started", "url", cfg.Ledger.URL, "contract_index", cfg.Ledger.ContractIndex)
	}

	svc := pipeline.New(db, hermesClient, sink, rec, logger)

	// API server
	router := api.NewRouter(db, svc, lc, rec, cfg.Server, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
	cancel()

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
