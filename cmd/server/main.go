package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogapp "github.com/papersupply/backend/internal/application/catalog"
	financeapp "github.com/papersupply/backend/internal/application/finance"
	fulfillmentapp "github.com/papersupply/backend/internal/application/fulfillment"
	inventoryapp "github.com/papersupply/backend/internal/application/inventory"
	quotingapp "github.com/papersupply/backend/internal/application/quoting"
	"github.com/papersupply/backend/internal/domain/catalog"
	"github.com/papersupply/backend/internal/domain/ledger"
	"github.com/papersupply/backend/internal/domain/quoting"
	"github.com/papersupply/backend/internal/infrastructure/config"
	"github.com/papersupply/backend/internal/infrastructure/logger"
	"github.com/papersupply/backend/internal/infrastructure/persistence"
	"github.com/papersupply/backend/internal/infrastructure/scheduler"
	"github.com/papersupply/backend/internal/interfaces/http/handler"
	"github.com/papersupply/backend/internal/interfaces/http/middleware"
	"github.com/papersupply/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("starting paper supply backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

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
	log.Info("database connected", zap.String("driver", cfg.Database.Driver))

	// Postgres schemas are managed by cmd/migrate; sqlite is for local
	// development only, so the schema is created in place.
	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.DB.AutoMigrate(
			&catalog.Item{},
			&ledger.Entry{},
			&quoting.Quote{},
			&quoting.Line{},
		); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	// Repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	fulfillmentUOW := persistence.NewFulfillmentUnitOfWork(db.DB)

	// Application services
	quotingService := quotingapp.NewService(quoteRepo, itemRepo, quotingapp.Policy{
		ValidityDays: cfg.Commerce.QuoteValidityDays,
		DeliveryDays: cfg.Commerce.QuoteDeliveryDays,
	}, log)
	fulfillmentService := fulfillmentapp.NewService(fulfillmentUOW, fulfillmentapp.Policy{
		SupplierCostRatio:     decimal.NewFromFloat(cfg.Commerce.SupplierCostRatio),
		CompletedDeliveryDays: cfg.Commerce.CompletedDeliveryDays,
		PartialDeliveryDays:   cfg.Commerce.PartialDeliveryDays,
		PendingDeliveryDays:   cfg.Commerce.PendingDeliveryDays,
	}, log)
	financialService := financeapp.NewService(entryRepo, itemRepo, cfg.Commerce.TopSellersLimit, log)
	inventoryService := inventoryapp.NewService(itemRepo, log)
	catalogService := catalogapp.NewService(itemRepo, log)

	// Quote expiry sweeper
	sweeper := scheduler.NewQuoteExpiryScheduler(quotingService, log, scheduler.QuoteExpirySchedulerConfig{
		Enabled:       cfg.Sweeper.Enabled,
		CheckInterval: cfg.Sweeper.CheckInterval,
		SweepTimeout:  time.Minute,
	})
	if err := sweeper.Start(context.Background()); err != nil {
		log.Fatal("Failed to start quote expiry scheduler", zap.Error(err))
	}

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig),
	)

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewQuoteHandler(quotingService)).
		Register(handler.NewOrderHandler(fulfillmentService)).
		Register(handler.NewInventoryHandler(inventoryService)).
		Register(handler.NewCatalogHandler(catalogService)).
		Register(handler.NewFinanceHandler(financialService)).
		Register(handler.NewSystemHandler(db, version))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sweeper.Stop(ctx); err != nil {
		log.Error("Quote expiry scheduler shutdown failed", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited gracefully")
}
