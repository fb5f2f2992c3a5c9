package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transit-backoffice/internal/adapters/cache"
	"transit-backoffice/internal/adapters/events"
	"transit-backoffice/internal/adapters/http/middleware"
	"transit-backoffice/internal/adapters/http/routes"
	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/config"
	"transit-backoffice/internal/core/services"
	"transit-backoffice/internal/pkg/token"

	"github.com/gofiber/fiber/v2"

	_ "transit-backoffice/docs" // Swagger docs
)

// @title Transit Backoffice API
// @version 1.0
// @description Internal business dashboard API: employees, payroll, budgets, fleet, notifications.

// @contact.name API Support
// @contact.email ops@transitco.example

// @host localhost:3000
// @BasePath /api/v1
// @schemes https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed roles, locations and the bootstrap admin
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Session token codec: secret and TTL are fixed for the process
	codec := token.NewCodec(cfg.Session.Secret, time.Duration(cfg.Session.TTLSeconds)*time.Second)

	// Optional infrastructure: report cache and event publisher both
	// degrade gracefully when unconfigured
	reportCache := cache.New(cfg.Redis)
	defer reportCache.Close()

	publisher := events.NewPublisher(cfg.AMQP)
	defer publisher.Close()

	// Object storage boundary (local disk; vendor client in production)
	storage, err := services.NewLocalObjectStorage(getStorageDir())
	if err != nil {
		log.Fatalf("❌ Failed to init object storage: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Transit Backoffice API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	notificationService := routes.Setup(app, cfg, routes.Deps{
		DB:        db,
		Cache:     reportCache,
		Publisher: publisher,
		Storage:   storage,
		Codec:     codec,
	})

	// Background maintenance jobs
	scheduler := services.NewScheduler(notificationService)
	scheduler.Start()
	defer scheduler.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func getStorageDir() string {
	if dir := os.Getenv("STORAGE_DIR"); dir != "" {
		return dir
	}
	return "./storage"
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
