package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	"rentfolio-backend/internal/api/rest"
	"rentfolio-backend/internal/config"
	"rentfolio-backend/internal/jobs"
	"rentfolio-backend/internal/logger"
	"rentfolio-backend/internal/renderer"
	"rentfolio-backend/internal/repository/postgres"
	"rentfolio-backend/internal/scheduler"
	"rentfolio-backend/internal/security"
	"rentfolio-backend/internal/service"

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
	logger.Info("Starting Rentfolio Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

	// Initialize Database
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
	tokenManager := security.NewTokenManager(cfg.Auth.Secret)

	// Initialize Receipt Renderer
	docRenderer, err := renderer.NewFileRenderer(cfg.Receipts.OutputDir)
	if err != nil {
		logger.Error("Failed to initialize receipt renderer", "error", err)
		log.Fatalf("Failed to initialize receipt renderer: %v", err)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		fmt.Sprintf("%d", cfg.SMTP.Port),
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	propertySvc := service.NewPropertyService(store.PropertyRepository, store.LeaseRepository)
	tenantSvc := service.NewTenantService(store.TenantRepository)
	rentSvc := service.NewRentService(store.RentRepository, store.LeaseRepository, store.PaymentRepository, store)
	receiptSvc := service.NewReceiptService(
		store.ReceiptRepository,
		store.RentRepository,
		store.LeaseRepository,
		store.PropertyRepository,
		store.TenantRepository,
		docRenderer,
		emailSvc,
		cfg.Receipts.OutputDir,
		cfg.Receipts.LandlordName,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.RentRepository,
		store.LeaseRepository,
		store.ReceiptRepository,
		store,
		receiptSvc,
	)
	leaseSvc := service.NewLeaseService(
		store.LeaseRepository,
		store.PropertyRepository,
		store.TenantRepository,
		store.RentRepository,
		store.PaymentRepository,
		rentSvc,
		store,
	)
	reminderSvc := service.NewReminderService(
		store.ReminderRepository,
		store.RentRepository,
		store.LeaseRepository,
		store.TenantRepository,
		emailSvc,
	)
	loanSvc := service.NewLoanService(store.LoanRepository, store.PropertyRepository)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Rents:     rentSvc,
		Receipts:  receiptSvc,
		Reminders: reminderSvc,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Initialize HTTP API
	handler := rest.NewHandler(propertySvc, tenantSvc, leaseSvc, rentSvc, paymentSvc, receiptSvc, reminderSvc, loanSvc)
	router := handler.Router(tokenManager, cfg.Auth.Enabled)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
