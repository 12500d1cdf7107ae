package main

import (
	"context"
	"database/sql"
	"errors"
	"file-drop/internal/adapters/eventbroker/nats"
	"file-drop/internal/adapters/repository/postgres"
	"file-drop/internal/adapters/storage/local"
	"file-drop/internal/adapters/storage/minio"
	"file-drop/internal/config"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/service/lifecycle"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"
)

// The sweeper runs the lifecycle sweeps on their own schedule, away
// from request-serving instances, and audits transfer events from the
// stream.
func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("db connection established")

	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}
	localStore, err := local.NewStore(cfg.Local, logger)
	if err != nil {
		logger.Error("failed to init local store", "error", err)
		os.Exit(1)
	}

	publisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init NATS publisher", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close NATS publisher", "error", err)
		}
	}()

	unitOfWork := postgres.NewUnitOfWork(db)
	lifecycleService := lifecycle.NewLifecycleService(unitOfWork, minioAdapter, localStore, publisher, cfg.Lifecycle, logger)
	auditor := lifecycle.NewEventAuditor(logger)

	natsConsumer, err := nats.NewNATSConsumer(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to create NATS consumer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := natsConsumer.Close(); err != nil {
			logger.Error("failed to close NATS consumer", "error", err)
		}
	}()

	if err := natsConsumer.Subscribe(ctx, auditor); err != nil {
		logger.Error("failed to subscribe to NATS", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS subscription active")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runSweepTask(ctx, "expire", cfg.Lifecycle.ExpireEvery, lifecycleService.ExpireTransfers, logger)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		runSweepTask(ctx, "purge-local", cfg.Lifecycle.PurgeEvery, lifecycleService.PurgeLocalFiles, logger)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		runSweepTask(ctx, "orphans", cfg.Lifecycle.OrphanEvery, lifecycleService.CollectOrphanChunks, logger)
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down sweeper")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := natsConsumer.Close(); err != nil {
		logger.Error("failed to close NATS consumer during shutdown", "error", err)
	}

	wg.Wait()
	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		logger.Info("shutdown timeout exceeded")
	}
	logger.Info("sweeper shutdown complete")
}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func runSweepTask(ctx context.Context, name string, every time.Duration, sweep func(context.Context, time.Time) (domain.SweepReport, error), logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("sweep task initialized", "sweep", name, "interval", every)

	for {
		select {
		case <-ticker.C:
			report, err := sweep(ctx, time.Now())
			if err != nil {
				logger.Error("sweep failed", "sweep", name, "error", err)
				continue
			}
			logger.Info("sweep completed", "sweep", name, "succeeded", report.Succeeded, "failed", report.Failed)
		case <-ctx.Done():
			logger.Info("sweep task stopped", "sweep", name)
			return
		}
	}
}
