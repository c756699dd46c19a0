package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"autorent-backend/internal/config"
	"autorent-backend/internal/jobs"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/repository/postgres"
	"autorent-backend/internal/scheduler"
	"autorent-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('activate-due-bookings', 'complete-elapsed-maintenance', 'all')")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting autorent cronjob runner...")

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db).WithTimeouts(cfg.LockTimeout(), cfg.StatementTimeout())
	orderSvc := service.NewOrderService(store, store.OrderRepository)
	vehicleSvc := service.NewVehicleStatusService(store, store.VehicleRepository, store.OrderRepository, cfg.Maintenance.WindowDays)
	jobRunner := jobs.NewJobRunner(orderSvc, vehicleSvc, cfg)

	if *runOnce != "" {
		switch *runOnce {
		case "activate-due-bookings":
			jobRunner.ActivateDueBookings()
		case "complete-elapsed-maintenance":
			jobRunner.CompleteElapsedMaintenance()
		case "all":
			jobRunner.RunAllJobs()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	logger.Info("Cronjob runner stopped")
}
