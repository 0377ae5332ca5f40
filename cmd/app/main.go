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
	"github.com/Domenick1991/busboarding/internal/bootstrap"
	"github.com/Domenick1991/busboarding/internal/cache"
	"github.com/Domenick1991/busboarding/internal/kafka"
	"github.com/Domenick1991/busboarding/internal/metrics"
	"github.com/Domenick1991/busboarding/internal/repository"
	"github.com/Domenick1991/busboarding/internal/service/boarding"
	"github.com/Domenick1991/busboarding/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
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

	var (
		runs     repository.SequenceRepository
		runCache boarding.Cache
		producer boarding.Producer
	)

	if cfg.Database.Enabled() {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			logger.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		repo := repository.NewSequenceRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			logger.Error("migrate postgres", "error", err)
			os.Exit(1)
		}
		runs = repo
	} else {
		logger.Warn("database host not set, runs will not be stored")
	}

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Boarding.CacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		runCache = redisCache
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer kafkaProducer.Close()
		if err := kafkaProducer.CheckConnection(ctx); err != nil {
			logger.Warn("kafka not reachable, events may be lost", "error", err)
		}
		producer = kafka.RetryingProducer{Producer: kafkaProducer, MaxRetries: cfg.Worker.PublishMaxRetries}
	}

	boardingService := boarding.NewBoardingService(
		runs,
		runCache,
		producer,
		cfg.Kafka.SequenceTopic,
		time.Duration(cfg.Boarding.RetentionHours)*time.Hour,
		boarding.WithMetrics(metrics.NewBoarding(prometheus.DefaultRegisterer)),
		boarding.WithLogger(logger),
	)

	if err := bootstrap.Run(ctx, cfg, boardingService, prometheus.DefaultGatherer, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
