package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"

	"github.com/sejal-1604/MGNREGA/internal/adapter/httpapi"
	kafkaadapter "github.com/sejal-1604/MGNREGA/internal/adapter/kafka"
	"github.com/sejal-1604/MGNREGA/internal/config"
	"github.com/sejal-1604/MGNREGA/internal/datagov"
	"github.com/sejal-1604/MGNREGA/internal/observability"
	"github.com/sejal-1604/MGNREGA/internal/reference"
	"github.com/sejal-1604/MGNREGA/internal/refresh"
	"github.com/sejal-1604/MGNREGA/internal/resolver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	table := reference.NewTable()
	logger.Info("reference table loaded", "districts", table.Len())

	// The live tier is wired only when live mode is on and the credential
	// passes the sanity check; otherwise resolution starts at the
	// reference tier.
	var upstream resolver.Upstream
	if cfg.LiveTierEnabled() {
		upstream = datagov.NewClient(cfg.BaseURL, cfg.APIKey, cfg.ResourceIDs, reference.StateCode, cfg.UpstreamTimeout, metrics, logger)
		metrics.LiveDataEnabled.Set(1)
		logger.Info("live data tier enabled", "base_url", cfg.BaseURL, "resources", len(cfg.ResourceIDs), "timeout", cfg.UpstreamTimeout)
	} else {
		logger.Info("live data tier disabled", "live_mode", cfg.UseLiveData, "api_key_configured", cfg.APIKeyConfigured())
	}

	cache := gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	res := resolver.New(upstream, table, cache, metrics, logger)

	var exporter refresh.Exporter
	var exporterClose func() error
	if cfg.ExportEnabled() {
		e := kafkaadapter.NewExporter(cfg.KafkaBrokers, cfg.KafkaExportTopic, metrics, logger)
		exporter = e
		exporterClose = e.Close
		logger.Info("kafka export enabled", "topic", cfg.KafkaExportTopic)
	}

	scheduler := refresh.NewScheduler(res, exporter, cfg.RefreshInterval, clockwork.NewRealClock(), logger)

	srv := httpapi.NewServer(cfg.HTTPAddr, cfg.AllowedOrigin, res, scheduler, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if cfg.RefreshEnabled {
		go func() {
			if err := scheduler.Run(ctx); err != nil {
				logger.Error("refresh scheduler error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if exporterClose != nil {
		if err := exporterClose(); err != nil {
			logger.Error("kafka exporter close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
