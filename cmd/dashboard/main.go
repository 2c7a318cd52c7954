// cmd/dashboard/main.go
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

	"nlp-dashboard/internal/analysis"
	"nlp-dashboard/internal/articles"
	"nlp-dashboard/internal/common/cache"
	"nlp-dashboard/internal/common/config"
	"nlp-dashboard/internal/common/database"
	"nlp-dashboard/internal/common/logger"
	"nlp-dashboard/internal/common/observability"
	"nlp-dashboard/internal/dashboard"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

type connection interface {
	Ping(ctx context.Context) error
	Close() error
}

// connectWithRetry opens and pings a connection until it answers. A connection that
// fails its ping is closed before the next attempt.
func connectWithRetry[T connection](ctx context.Context, open func() (T, error), maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) (T, error) {
	var conn T
	err := retryWithBackoff(func() error {
		c, err := open()
		if err != nil {
			return err
		}
		if err := c.Ping(ctx); err != nil {
			c.Close()
			return err
		}
		conn = c
		return nil
	}, maxRetries, initialDelay, log, operationName)
	return conn, err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting dashboard...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("store", cfg.Store.Backend),
	)

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	tracing, err := observability.SetupTracing(cfg.Tracing, cfg.App.Name, cfg.App.Version)
	if err != nil {
		zapLog.Fatal("tracing setup failed", zap.Error(err))
	}
	obs.AttachTracing(tracing)

	ctx := context.Background()
	checks := map[string]dashboard.Pinger{}

	// --- Article store with retry ---
	store, err := connectWithRetry(ctx, func() (*articles.Backend, error) {
		return articles.Open(cfg.Store)
	}, 15, 2*time.Second, zapLog, "Article store connection")
	if err != nil {
		zapLog.Fatal("article store failed after retries", zap.Error(err))
	}
	defer store.Close()
	checks["store"] = store
	zapLog.Info("Article store connected successfully", zap.String("backend", store.Name))

	// --- Response cache with retry ---
	var responseCache cache.Cache = cache.NopCache{}
	if cfg.Cache.Enabled {
		redis, err := connectWithRetry(ctx, func() (*database.RedisClient, error) {
			return database.NewRedis(cfg.Cache.Redis)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		responseCache = cache.NewRedisCache(redis.Client)
		checks["cache"] = redis
		zapLog.Info("Redis connected successfully", zap.Duration("ttl", cfg.Cache.GetTTL()))
	} else {
		zapLog.Warn("Response cache disabled; every refresh calls the language service")
	}
	memo := cache.NewMemoizer(responseCache, cfg.Cache.GetTTL(), cfg.Cache.Prefix, log)

	// --- Language service ---
	languageClient, err := analysis.NewLanguageClient(ctx, cfg.Language)
	if err != nil {
		zapLog.Fatal("language client init failed", zap.Error(err))
	}

	fetcher := articles.NewFetcher(store, memo, log.WithFields(map[string]interface{}{"component": "articles"}))
	analyzer := analysis.NewAnalyzer(languageClient, memo, log.WithFields(map[string]interface{}{"component": "analysis"}))
	service := dashboard.NewService(fetcher, analyzer, obs, log)

	gin.SetMode(cfg.Server.Mode)
	handler := dashboard.NewHandler(&dashboard.Config{
		Title:          cfg.Dashboard.Title,
		RequestTimeout: config.GetDuration(cfg.Dashboard.RequestTimeout),
	}, service, checks, log)

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           dashboard.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("Dashboard listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("dashboard server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping dashboard...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}

	zapLog.Info("Dashboard stopped gracefully")
}
