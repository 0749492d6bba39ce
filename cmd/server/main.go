// Command server runs the community REST API.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"

	"github.com/RealSujal/community-app/internal/app/routes"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	"github.com/RealSujal/community-app/internal/infrastructure/database"
	"github.com/RealSujal/community-app/internal/infrastructure/mailer"
	Logger "github.com/RealSujal/community-app/pkg/logger"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := Logger.SetupLogger(os.Getenv("LOG_DIR")); err != nil {
		fmt.Printf("Failed to set up logger: %v\n", err)
		os.Exit(1)
	}
	defer Logger.Close()

	// Environment variables may also be provided by the process manager
	if err := godotenv.Load(); err != nil {
		Logger.Warning("Could not load .env file: %v", err)
	} else {
		Logger.Info("Loaded .env file")
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		Logger.Error("Failed to create database pool: %v", err)
		os.Exit(1)
	}
	defer pool.Close()
	db := pool.GetDB()

	if cfg.DBMigrationMode == "drop" {
		Logger.Warning("Running in drop mode, all tables will be recreated")
	}
	if err := database.Migrate(db, cfg.DBMigrationMode); err != nil {
		Logger.Error("Database migration failed: %v", err)
		os.Exit(1)
	}
	if err := database.SeedFAQs(db); err != nil {
		Logger.Warning("Seeding FAQs failed: %v", err)
	}

	serviceContainer := container.NewServiceContainer(db, cfg, nil, mailer.NewSMTPMailer(cfg))
	defer serviceContainer.Close()

	r := routes.SetupRouter(serviceContainer)

	printSystemInfo(pool)

	port := cfg.ServerPort
	Logger.Info("Server listening on http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		Logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}

// printSystemInfo logs pool and runtime statistics at startup
func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		Logger.Info("Database pool stats: %+v", stats)
	}

	Logger.Info("CPU cores: %d", runtime.NumCPU())
	Logger.Info("Goroutines: %d", runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	Logger.Info("Memory: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)
}
