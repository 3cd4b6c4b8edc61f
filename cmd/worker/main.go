package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/festalab/stories-ms-go/internal/cache"
	"github.com/festalab/stories-ms-go/internal/config"
	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/deriver"
	workerHandler "github.com/festalab/stories-ms-go/internal/handler/worker"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
	"github.com/festalab/stories-ms-go/internal/repository/mariadb"
	"github.com/festalab/stories-ms-go/internal/storage"
	"github.com/festalab/stories-ms-go/internal/task"
	"github.com/festalab/stories-ms-go/internal/transcoder"
	storySvc "github.com/festalab/stories-ms-go/internal/usecase/story"

	_ "github.com/go-sql-driver/mysql"

	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	repo := mariadb.NewStoryRepository(database.DB)
	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)

	tc := transcoder.NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath, cfg.TranscodeTimeout)
	drv := deriver.NewDeriver(deriver.Config{
		StagingDir:           cfg.StagingDir,
		MaxOriginalSizeBytes: cfg.MaxOriginalSizeBytes,
		CompressionQuality:   cfg.CompressionQuality,
		PreviewEnabled:       cfg.PreviewEnabled,
	}, tc)

	processSvc := storySvc.NewMediaProcessor(drv, strg, dispatcher)
	reconcileSvc := storySvc.NewCompletionReconciler(repo, ca)
	purgeSvc := storySvc.NewDeletedPurger(repo, strg, cfg.PurgeRetention)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessMedia, func(ctx context.Context, t *asynq.Task) error {
		job, err := task.ParseProcessMediaPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessMediaHandler(ctx, job, processSvc)
	})
	mux.HandleFunc(task.TypeCompleteProcessing, func(ctx context.Context, t *asynq.Task) error {
		sig, err := task.ParseCompleteProcessingPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.CompleteProcessingHandler(ctx, sig, reconcileSvc)
	})

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go runPurgeSweep(purgeCtx, purgeSvc)

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.ObjectStorage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func runPurgeSweep(ctx context.Context, svc port.DeletedPurger) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.PurgeDeletedStories(ctx); err != nil {
				logger.Warnf(ctx, "purge sweep failed: %v", err)
			}
		}
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: cfg.WorkerConcurrency})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
