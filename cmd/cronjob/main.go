package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sitework-backend/internal/config"
	"sitework-backend/internal/db"
	"sitework-backend/internal/jobs"
	"sitework-backend/internal/logger"
	"sitework-backend/internal/repository/postgres"
	"sitework-backend/internal/scheduler"
	"sitework-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-overdue-assignments', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Sitework Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	conn, err := db.Open(context.Background(), cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(conn)

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		cfg.Email.ManagerEmail,
		cfg.Email.ManagerName,
	)
	reportService := service.NewReportService(store.ReportRepository, cfg.Inventory.MaintenanceEveryDays)

	jobServices := &jobs.Services{
		Email:  emailService,
		Report: reportService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(conn, store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "mark-overdue-assignments":
		jobRunner.MarkOverdueAssignments()
	case "send-overdue-reminders":
		jobRunner.SendOverdueReminders()
	case "send-maintenance-reminders":
		jobRunner.SendMaintenanceReminders()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	case "all-weekly":
		jobRunner.RunAllWeeklyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - mark-overdue-assignments\n")
		fmt.Printf("  - send-overdue-reminders\n")
		fmt.Printf("  - send-maintenance-reminders\n")
		fmt.Printf("  - all-nightly\n")
		fmt.Printf("  - all-weekly\n")
		os.Exit(1)
	}
}
