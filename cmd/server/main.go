package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-admin/config"
	"github.com/d60-Lab/blog-admin/internal/api"
	"github.com/d60-Lab/blog-admin/internal/api/handler"
	"github.com/d60-Lab/blog-admin/internal/repository"
	"github.com/d60-Lab/blog-admin/internal/service"
	"github.com/d60-Lab/blog-admin/pkg/cache"
	"github.com/d60-Lab/blog-admin/pkg/database"
	"github.com/d60-Lab/blog-admin/pkg/logger"
	"github.com/d60-Lab/blog-admin/pkg/telemetry"
)

// @title blog-admin API
// @version 1.0
// @description 扩展页（Modules / Feathers / Themes）的 JSON 接口
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	defer logger.Sync()
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	sentryEnabled, flushSentry, err := telemetry.InitSentry(cfg.Sentry)
	if err != nil {
		return err
	}
	defer flushSentry()

	stateRepo, closeStore, err := newExtendStateRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	postRepo := repository.NewHTTPPostRepository(cfg.API.BaseURL, cfg.API.Timeout)
	h := handler.NewHandler(service.NewPostService(postRepo), service.NewExtendService(stateRepo), cfg)

	router, err := api.NewRouter(cfg, h, api.Options{Tracing: cfg.Tracing.Enabled, Sentry: sentryEnabled})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("api", cfg.API.BaseURL),
			zap.String("extend_store", cfg.Extend.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// newExtendStateRepository 按 extend.store 选择存储
func newExtendStateRepository(ctx context.Context, cfg *config.Config) (repository.ExtendStateRepository, func(), error) {
	switch cfg.Extend.Store {
	case "redis":
		client, err := cache.NewRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisExtendStateRepository(client, cfg.Extend.TTL), func() { _ = client.Close() }, nil
	case "database":
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.MigrateExtendState(db); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		return repository.NewGormExtendStateRepository(db, cfg.Extend.TTL), func() { _ = database.Close(db) }, nil
	default:
		return repository.NewMemoryExtendStateRepository(cfg.Extend.TTL), func() {}, nil
	}
}
