package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sitework-backend/internal/api"
	"sitework-backend/internal/config"
	"sitework-backend/internal/db"
	"sitework-backend/internal/logger"
	"sitework-backend/internal/repository/postgres"
	"sitework-backend/internal/security"
	"sitework-backend/internal/service"
)

var (
	version   = "dev"
	buildTime = "unknown"
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
	logger.Info("Starting Sitework Backend...", "version", version, "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	conn, err := db.Open(ctx, cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()
	logger.Info("Database connection established")

	// Apply schema migrations
	if err := db.Migrate(ctx, conn); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(conn)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.APIKeyHash, cfg.Auth.TokenExpiryMinutes)

	// Initialize Services
	inventorySvc := service.NewInventoryService(store.ToolRepository, store.AssignmentRepository)
	assignmentSvc := service.NewAssignmentService(store.AssignmentRepository, store.ProjectRepository)
	projectSvc := service.NewProjectService(store.ProjectRepository)
	recordSvc := service.NewRecordService(store.RecordRepository, store.ProjectRepository)
	reportSvc := service.NewReportService(store.ReportRepository, cfg.Inventory.MaintenanceEveryDays)

	// Start the change feed that backs the SSE endpoint
	feed := postgres.NewChangeFeed(cfg.GetDatabaseConnectionString())
	go func() {
		if err := feed.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Change feed stopped", "error", err)
		}
	}()

	router := api.SetupRoutes(conn, api.Services{
		Inventory:   inventorySvc,
		Assignments: assignmentSvc,
		Projects:    projectSvc,
		Records:     recordSvc,
		Reports:     reportSvc,
	}, tokenManager, feed, version, buildTime)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
