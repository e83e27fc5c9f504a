package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	httpapi "aquascout-backend/internal/api/http"
	"aquascout-backend/internal/config"
	"aquascout-backend/internal/logger"
	"aquascout-backend/internal/repository/postgres"
	"aquascout-backend/internal/security"
	"aquascout-backend/internal/service"
	"aquascout-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AquaScout Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Artifact Storage
	var artifactStore storage.ArtifactStorage
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		logger.Info("Using local artifact storage", "dir", cfg.Storage.LocalDir)
		localStore, err := storage.NewLocalStorageService(cfg.Storage.BaseURL, cfg.Storage.LocalDir)
		if err != nil {
			logger.Error("Failed to initialize artifact storage", "error", err)
			log.Fatalf("Failed to initialize artifact storage: %v", err)
		}
		artifactStore = localStore
	} else {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize Services
	bookingSvc := service.NewBookingService(
		store.Bookings,
		store.Users,
		store.Settings,
		store.Ledger,
		store.Notifications,
		emailSvc,
	)
	settingsSvc := service.NewSettingsService(store.Settings)
	noteSvc := service.NewNotificationService(store.Notifications)

	// Assemble the HTTP router
	router := httpapi.NewRouter(
		bookingSvc,
		settingsSvc,
		noteSvc,
		tokenManager,
		artifactStore,
		cfg.Payments.WebhookSecret,
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
