package main

import (
	"context"
	"database/sql"
	"errors"
	"file-drop/internal/adapters/eventbroker/nats"
	"file-drop/internal/adapters/handlers/http/chi"
	"file-drop/internal/adapters/handlers/http/chi/v1/admin"
	transferhandler "file-drop/internal/adapters/handlers/http/chi/v1/transfer"
	uploadhandler "file-drop/internal/adapters/handlers/http/chi/v1/upload"
	"file-drop/internal/adapters/repository/postgres"
	"file-drop/internal/adapters/storage/local"
	"file-drop/internal/adapters/storage/minio"
	"file-drop/internal/config"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/service/lifecycle"
	"file-drop/internal/core/service/transfer"
	"file-drop/internal/core/service/upload"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"
)

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
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	//storage
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

	//events
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

	//repositories
	unitOfWork := postgres.NewUnitOfWork(db)

	//services
	uploadService := upload.NewUploadService(unitOfWork, minioAdapter, cfg.Upload, logger)
	transferService := transfer.NewTransferService(unitOfWork, minioAdapter, localStore, publisher, cfg.Transfer, logger)
	lifecycleService := lifecycle.NewLifecycleService(unitOfWork, minioAdapter, localStore, publisher, cfg.Lifecycle, logger)

	//http
	uploadHandler := uploadhandler.NewUploadHandlerV1(uploadService, logger)
	transferHandler := transferhandler.NewTransferHandlerV1(transferService, logger)
	adminHandler := admin.NewAdminHandlerV1(lifecycleService, logger)

	router := chi.NewRouter(logger, uploadHandler, transferHandler, adminHandler, cfg.Upload.ChunkSize, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// lifecycle sweeps
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

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

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
