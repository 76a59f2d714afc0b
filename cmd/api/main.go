package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SunnFlower47/kasir-print-service/internal/application/service"
	"github.com/SunnFlower47/kasir-print-service/internal/config"
	domainRepo "github.com/SunnFlower47/kasir-print-service/internal/domain/repository"
	"github.com/SunnFlower47/kasir-print-service/internal/infrastructure/backendapi"
	"github.com/SunnFlower47/kasir-print-service/internal/infrastructure/database"
	"github.com/SunnFlower47/kasir-print-service/internal/infrastructure/repository"
	"github.com/SunnFlower47/kasir-print-service/internal/presentation/http/handler"
	"github.com/SunnFlower47/kasir-print-service/internal/presentation/http/routes"
	"github.com/SunnFlower47/kasir-print-service/pkg/notify"
	"github.com/SunnFlower47/kasir-print-service/pkg/prefs"
	"github.com/SunnFlower47/kasir-print-service/pkg/printer"
	"github.com/SunnFlower47/kasir-print-service/pkg/receipt"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// System stores: database when configured, in-memory otherwise
	var (
		jobRepo         domainRepo.PrintJobRepository
		idempotencyRepo domainRepo.IdempotencyRepository
	)
	if cfg.Database.Configured() {
		db, err := database.NewPostgresDB(&cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		jobRepo = repository.NewPrintJobRepository(db)
		idempotencyRepo = repository.NewIdempotencyRepository(db)
	} else {
		logger.Warn("no database configured, print job history is in-memory only")
		jobRepo = repository.NewMemoryPrintJobRepository()
		idempotencyRepo = repository.NewMemoryIdempotencyRepository()
	}

	// Backend API client and settings resolver
	backendClient := backendapi.NewClient(cfg.Backend, logger)
	settingsService := service.NewSettingsService(backendClient, logger)
	settingsService.Load(context.Background())

	// Print chain: raw thermal device, host bridge, spool fallback
	device, err := printer.NewDeviceFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		logger.Warn("failed to initialize raw printer device", zap.Error(err))
		device = nil
	}
	bridge := printer.NewHTTPBridge(cfg.Printer.BridgeURL, logger)

	var bridgeIface printer.Bridge
	if bridge != nil {
		bridgeIface = bridge
	}

	prefStore := prefs.NewStore(cfg.Prefs.Path)
	formatter := receipt.NewFormatter(logger)
	notifier := notify.NewLogNotifier(logger)

	printService := service.NewPrintService(
		settingsService,
		formatter,
		prefStore,
		jobRepo,
		service.StaticOutletProvider(cfg.Printer.DefaultOutletID),
		notifier,
		logger,
		printer.NewDirectBackend(device, bridgeIface, logger),
		printer.NewNativeBackend(bridgeIface, logger),
		printer.NewSpoolBackend(bridgeIface, cfg.Printer.SpoolDir,
			printer.ExecOpener(cfg.Printer.SpoolOpener), os.Stdout, logger),
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Print:    handler.NewPrintHandler(printService),
		Settings: handler.NewSettingsHandler(settingsService),
		Prefs:    handler.NewPrefsHandler(prefStore),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8090"
	}

	logger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
