package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wyattreis/philly-ice-forecast/internal/adapter/clearsky"
	"github.com/wyattreis/philly-ice-forecast/internal/adapter/coops"
	httpadapter "github.com/wyattreis/philly-ice-forecast/internal/adapter/http"
	kafkaadapter "github.com/wyattreis/philly-ice-forecast/internal/adapter/kafka"
	"github.com/wyattreis/philly-ice-forecast/internal/adapter/nws"
	"github.com/wyattreis/philly-ice-forecast/internal/adapter/opentopo"
	"github.com/wyattreis/philly-ice-forecast/internal/config"
	"github.com/wyattreis/philly-ice-forecast/internal/observability"
	"github.com/wyattreis/philly-ice-forecast/internal/pipeline"
	"github.com/wyattreis/philly-ice-forecast/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	fetcher := nws.NewClient(cfg.NWSBaseURL, cfg.NWSTimeout, cfg.NWSRateLimit, logger)
	waterTemps := coops.NewClient(cfg.CoopsBaseURL, cfg.CoopsTimeout, nil, logger)
	elevations := opentopo.NewCachedService(
		opentopo.NewClient(cfg.OpenTopoBaseURL, cfg.OpenTopoTimeout, logger),
	)

	assembler := pipeline.NewAssembler(fetcher, nil, logger, metrics)
	forecaster := pipeline.NewForecaster(
		assembler,
		waterTemps,
		elevations,
		clearsky.New(),
		pipeline.Params{
			DepthM:     cfg.DepthM,
			Albedo:     cfg.Albedo,
			PressureMB: cfg.PressureMB,
			Wind:       cfg.Wind,
			TempPolicy: cfg.TempPolicy(),
		},
		logger,
		metrics,
	)

	results := store.NewMemory(0, 0)

	// Kafka publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var publisher pipeline.ResultPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaSinkTopic, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	runner := pipeline.NewRunner(forecaster, cfg.Location, results, publisher, cfg.RefreshInterval, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.Location, runner, results, waterTemps, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := runner.Run(ctx); err != nil {
			logger.Error("forecast runner error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
