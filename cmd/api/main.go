package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/festalab/stories-ms-go/internal/cache"
	"github.com/festalab/stories-ms-go/internal/config"
	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/deriver"
	"github.com/festalab/stories-ms-go/internal/handler/api"
	"github.com/festalab/stories-ms-go/internal/logger"
	cMiddleware "github.com/festalab/stories-ms-go/internal/middleware"
	"github.com/festalab/stories-ms-go/internal/port"
	"github.com/festalab/stories-ms-go/internal/renderer"
	"github.com/festalab/stories-ms-go/internal/repository/mariadb"
	"github.com/festalab/stories-ms-go/internal/task"
	"github.com/festalab/stories-ms-go/internal/transcoder"
	storySvc "github.com/festalab/stories-ms-go/internal/usecase/story"

	_ "github.com/go-sql-driver/mysql"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTPublicKey)

	storyRepo := mariadb.NewStoryRepository(database.DB)
	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching is disabled and uploads will be refused")
	}

	tc := transcoder.NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath, cfg.TranscodeTimeout)
	drv := deriver.NewDeriver(deriver.Config{
		StagingDir:           cfg.StagingDir,
		MaxOriginalSizeBytes: cfg.MaxOriginalSizeBytes,
		CompressionQuality:   cfg.CompressionQuality,
		PreviewEnabled:       cfg.PreviewEnabled,
	}, tc)

	ingestSvc := storySvc.NewStoryIngestor(storyRepo, drv, dispatcher)
	r.Post("/stories", api.UploadStoryHandler(ingestSvc))

	getSvc := storySvc.NewStoryGetter(storyRepo)
	rendererSvc := renderer.NewHTTPRenderer(ca)
	r.With(cMiddleware.WithStoryID()).
		Get("/stories/{id}", api.GetStoryHandler(rendererSvc, getSvc))

	listSvc := storySvc.NewStoryLister(storyRepo)
	r.Get("/stories", api.ListStoriesHandler(listSvc))

	visibilitySvc := storySvc.NewVisibilityUpdater(storyRepo, ca)
	r.With(cMiddleware.WithStoryID()).
		Patch("/stories/{id}/visibility", api.UpdateVisibilityHandler(visibilitySvc))

	deleteSvc := storySvc.NewStoryDeleter(storyRepo, ca)
	r.With(cMiddleware.WithStoryID()).
		Delete("/stories/{id}", api.DeleteStoryHandler(deleteSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithDSTAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
