package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Khursands/Online-Pharmacy/config"
	"github.com/Khursands/Online-Pharmacy/internal/api/handler"
	"github.com/Khursands/Online-Pharmacy/internal/api/router"
	"github.com/Khursands/Online-Pharmacy/internal/cache"
	"github.com/Khursands/Online-Pharmacy/internal/events"
	"github.com/Khursands/Online-Pharmacy/internal/middleware"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/internal/service"
	"github.com/Khursands/Online-Pharmacy/internal/storage"
	"github.com/Khursands/Online-Pharmacy/pkg/database"
	"github.com/Khursands/Online-Pharmacy/pkg/logger"
	"github.com/Khursands/Online-Pharmacy/pkg/tracing"
)

// @title Online Pharmacy API
// @version 1.0.0
// @description 在线药房 REST API：目录、购物车、下单、处方与评价
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	gin.SetMode(cfg.Server.Mode)
	ctx := context.Background()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			Release:          cfg.Server.Version,
			SampleRate:       cfg.Sentry.SampleRate,
			AttachStacktrace: true,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, cfg.Server.Version)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}

	// 未启用 Redis 时 catalogCache 保持 nil 接口
	var (
		rdb          *redis.Client
		catalog      *cache.Catalog
		catalogCache service.CatalogCache
		cachePinger  handler.Pinger
		deleter      service.KeyDeleter
	)
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, catalog reads fall through to the database", zap.Error(err))
		}
		catalog = cache.NewCatalog(rdb, cfg.Cache.TTL)
		catalogCache, cachePinger, deleter = catalog, catalog, catalog
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	var invalidator *service.CacheInvalidator
	stopInvalidator := func(context.Context) error { return nil }
	if deleter != nil {
		invalidator = service.NewCacheInvalidator(deleter, cfg.Cache.InvalidateQueue)
		stopInvalidator = invalidator.Start(cfg.Cache.InvalidateWorkers)
	}

	medicines := repository.NewMedicineRepository(db)
	carts := repository.NewCartRepository(db)
	h := handler.New(handler.Deps{
		Auth:          service.NewAuthService(repository.NewUserRepository(db), cfg.JWT.Secret, cfg.JWT.Expire),
		Catalog:       service.NewCatalogService(medicines, repository.NewCategoryRepository(db), catalogCache),
		Cart:          service.NewCartService(carts),
		Orders:        service.NewOrderService(repository.NewOrderRepository(db), publisher, invalidator),
		Prescriptions: service.NewPrescriptionService(repository.NewPrescriptionRepository(db), store),
		Reviews:       service.NewReviewService(repository.NewReviewRepository(db), medicines, invalidator),
		DB:            db,
		Cache:         cachePinger,
		Version:       cfg.Server.Version,
	})

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	stopCleanup := make(chan struct{})
	go limiter.RunCleanup(time.Minute, stopCleanup)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.Setup(cfg, h, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("version", cfg.Server.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	var serveErr error
	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	close(stopCleanup)
	// 先排空失效队列再关闭 Redis
	if err := stopInvalidator(shutdownCtx); err != nil {
		logger.Warn("cache invalidation queue not drained", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		logger.Error("close publisher", zap.Error(err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("close redis", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		logger.Error("close database", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown tracing", zap.Error(err))
	}
	logger.Info("server stopped")
	return serveErr
}
