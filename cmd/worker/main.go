package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/busboarding/config"
	"github.com/Domenick1991/busboarding/internal/export"
	"github.com/Domenick1991/busboarding/internal/kafka"
	"github.com/Domenick1991/busboarding/internal/repository"
	"github.com/Domenick1991/busboarding/internal/service/boarding"
	"github.com/Domenick1991/busboarding/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("load .env", "error", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := telemetry.SetupLogger(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runs repository.SequenceRepository
	if cfg.Database.Enabled() {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			logger.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		runs = repository.NewSequenceRepository(pool)
	}

	boardingService := boarding.NewBoardingService(
		runs,
		nil,
		nil,
		"",
		time.Duration(cfg.Boarding.RetentionHours)*time.Hour,
		boarding.WithLogger(logger),
	)

	if len(cfg.Kafka.Brokers) > 0 {
		exporter := export.NewFileExporter(cfg.Worker.ExportDir, logger)
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.SequenceTopic)
		defer consumer.Close()

		go func() {
			err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
				event, err := kafka.DecodeSequenceEvent(msg)
				if err != nil {
					logger.Warn("decode sequence event", "offset", msg.Offset, "error", err)
					return nil
				}
				if event.Type != kafka.EventSequenceGenerated {
					return nil
				}
				if _, err := exporter.Export(ctx, event); err != nil {
					logger.Error("export sequence", "run_id", event.RunID, "error", err)
				}
				return nil
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("consumer stopped", "error", err)
			}
		}()
	} else {
		logger.Warn("no kafka brokers configured, exports disabled")
	}

	purgeTicker := time.NewTicker(time.Duration(max(cfg.Worker.PurgeSweepMinutes, 1)) * time.Minute)
	defer purgeTicker.Stop()

	for {
		select {
		case <-purgeTicker.C:
			purged, err := boardingService.PurgeExpiredRuns(ctx)
			if err != nil {
				logger.Error("purge expired runs", "error", err)
				continue
			}
			if purged > 0 {
				logger.Info("purged expired runs", "count", purged)
			}
		case <-ctx.Done():
			logger.Info("worker shutting down")
			return
		}
	}
}
