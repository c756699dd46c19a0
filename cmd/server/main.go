package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autorent-backend/db/migrations"
	api "autorent-backend/internal/api/http"
	"autorent-backend/internal/config"
	"autorent-backend/internal/jobs"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/repository/postgres"
	"autorent-backend/internal/scheduler"
	"autorent-backend/internal/security"
	"autorent-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Optional .env for local development; env vars override the YAML file.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting autorent backend...", "address", cfg.GetServerAddress())

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established",
		"host", cfg.Database.Host, "database", cfg.Database.Database)

	if cfg.Database.Migrate {
		if err := migrations.Run(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		logger.Info("Database migrations applied")
	}

	store := postgres.NewStore(db).WithTimeouts(cfg.LockTimeout(), cfg.StatementTimeout())

	availabilitySvc := service.NewAvailabilityService(store.OrderRepository, store.VehicleRepository)
	orderSvc := service.NewOrderService(store, store.OrderRepository)
	vehicleSvc := service.NewVehicleStatusService(store, store.VehicleRepository, store.OrderRepository, cfg.Maintenance.WindowDays)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	router := api.NewRouter(
		api.NewBookingHandler(orderSvc, availabilitySvc),
		api.NewAdminHandler(vehicleSvc),
		tokenManager,
	)

	jobRunner := jobs.NewJobRunner(orderSvc, vehicleSvc, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
