package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coregenion/holo-gateway/internal/application/holo"
	"github.com/coregenion/holo-gateway/internal/infrastructure/cache"
	"github.com/coregenion/holo-gateway/internal/infrastructure/config"
	"github.com/coregenion/holo-gateway/internal/infrastructure/labelfetch"
	"github.com/coregenion/holo-gateway/internal/infrastructure/logger"
	"github.com/coregenion/holo-gateway/internal/infrastructure/persistence"
	"github.com/coregenion/holo-gateway/internal/infrastructure/storage"
	"github.com/coregenion/holo-gateway/internal/interfaces/http/handler"
	"github.com/coregenion/holo-gateway/internal/interfaces/http/middleware"
	"github.com/coregenion/holo-gateway/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Holo gateway",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed gorm logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Label artifact store
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	artifacts, err := storage.NewArtifactStore(startupCtx, &cfg.Storage, log)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to initialize artifact store", zap.Error(err))
	}

	// Per-order fulfillment lock
	lockerFactory := cache.NewOrderLockerFactory(cfg.Redis, cache.WithLogger(log))
	locker, err := lockerFactory.CreateLocker()
	if err != nil {
		log.Fatal("Failed to initialize fulfillment lock", zap.Error(err))
	}

	// Label download client
	labels := labelfetch.NewHTTPLabelFetcher(cfg.API.LabelFetchTimeout, log,
		labelfetch.WithRetries(cfg.API.LabelFetchRetries),
	)

	// Application services
	catalogService, err := holo.NewCatalogService(
		productRepo,
		cfg.API.AssetsBaseURL,
		cfg.API.DefaultLocale,
		cfg.API.Locales,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize catalog service", zap.Error(err))
	}
	orderService := holo.NewOrderService(orderRepo, userRepo, log)
	fulfillmentService := holo.NewFulfillmentService(
		orderRepo,
		orderService,
		labels,
		artifacts,
		locker,
		log,
		holo.WithAbortOnLabelFailure(cfg.API.AbortOnLabelFailure),
	)

	// HTTP handlers
	productHandler := handler.NewProductHandler(catalogService, cfg.API.CatalogTimeout, log)
	orderHandler := handler.NewOrderHandler(orderService, fulfillmentService, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	r := router.NewRouter(engine, middleware.BearerAuth(cfg.API.Key))
	r.Register(productHandler)
	r.Register(orderHandler)
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
