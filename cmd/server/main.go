package main

import (
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/config"
	httpDelivery "github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/delivery/http"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/infrastructure/archive"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/infrastructure/cache"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/infrastructure/feed"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/infrastructure/store"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/logging"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/usecase"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting kitchen interchange service",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("no JWT secret configured - pricing endpoints will reject every request")
	}

	// Initialize infrastructure dependencies
	db, err := store.Open(cfg.Database.Path, cfg.Database.BusyTimeoutMS)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer db.Close()
	st := store.NewStore(db)

	var catalogFeed domain.CatalogFeed
	if cfg.Feed.Enabled {
		catalogFeed = feed.NewClient(cfg.Feed.Config, logger)
		logger.Info("remote catalog feeds enabled", zap.Strings("allowed_hosts", cfg.Feed.AllowedHosts))
	}

	var documentArchive domain.DocumentArchive
	if cfg.Archive.Enabled {
		client, err := archive.New(cfg.Archive)
		if err != nil {
			logger.Fatal("failed to create archive client", zap.Error(err))
		}
		documentArchive = client
		logger.Info("assembly archive enabled",
			zap.String("endpoint", cfg.Archive.Endpoint),
			zap.String("bucket", cfg.Archive.Bucket))
	}

	limiter := cache.NewLimiterCache(cfg.RateLimit.PerIP, cfg.RateLimit.Burst, 10*time.Minute)
	defer limiter.Close()

	// Initialize usecase layer
	importService := usecase.NewCatalogImportService(st, catalogFeed, logger)
	exportService := usecase.NewAssemblyExportService(st, documentArchive, usecase.AssemblyExportServiceConfig{
		Constants: cfg.Construction,
		Defaults: usecase.AssemblyDefaults{
			FinishName:     cfg.Defaults.FinishName,
			HingeType:      cfg.Defaults.HingeType,
			DrawerType:     cfg.Defaults.DrawerType,
			Status:         cfg.Defaults.Status,
			DeliveryMethod: cfg.Defaults.DeliveryMethod,
		},
	}, logger)
	pricingService := usecase.NewPricingService(st, logger)

	handler := httpDelivery.NewHandler(importService, exportService, pricingService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, limiter, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
