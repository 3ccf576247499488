package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"rentfolio-backend/internal/config"
	"rentfolio-backend/internal/jobs"
	"rentfolio-backend/internal/logger"
	"rentfolio-backend/internal/renderer"
	"rentfolio-backend/internal/repository/postgres"
	"rentfolio-backend/internal/scheduler"
	"rentfolio-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'generate-monthly-rents', 'all-nightly', 'all-monthly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentfolio Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Receipt Renderer
	docRenderer, err := renderer.NewFileRenderer(cfg.Receipts.OutputDir)
	if err != nil {
		logger.Error("Failed to initialize receipt renderer", "error", err)
		log.Fatalf("Failed to initialize receipt renderer: %v", err)
	}

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.SMTP.Host,
		fmt.Sprintf("%d", cfg.SMTP.Port),
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	rentService := service.NewRentService(
		store.RentRepository,
		store.LeaseRepository,
		store.PaymentRepository,
		store,
	)

	receiptService := service.NewReceiptService(
		store.ReceiptRepository,
		store.RentRepository,
		store.LeaseRepository,
		store.PropertyRepository,
		store.TenantRepository,
		docRenderer,
		emailService,
		cfg.Receipts.OutputDir,
		cfg.Receipts.LandlordName,
	)

	reminderService := service.NewReminderService(
		store.ReminderRepository,
		store.RentRepository,
		store.LeaseRepository,
		store.TenantRepository,
		emailService,
	)

	jobServices := &jobs.Services{
		Rents:     rentService,
		Receipts:  receiptService,
		Reminders: reminderService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

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
	case "generate-monthly-rents":
		jobRunner.GenerateMonthlyRents()
	case "mark-late-rents":
		jobRunner.MarkLateRents()
	case "send-due-reminders":
		jobRunner.SendDueReminders()
	case "send-pending-receipts":
		jobRunner.SendPendingReceipts()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	case "all-monthly":
		jobRunner.RunAllMonthlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		log.Fatalf("Unknown job: %s", jobName)
	}
}
