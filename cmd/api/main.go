package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"company-board-api/config"
	"company-board-api/middleware"
	"company-board-api/routes"
	"company-board-api/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()
	config.MigrateDB()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	storage, err := services.NewFileStorageFromEnv()
	if err != nil {
		log.Fatal("Failed to initialize file storage:", err)
	}

	routes.SetupRoutes(router, config.DB, storage)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Company Board API", "health": "/health"})
	})

	startNotificationCleanup()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// startNotificationCleanup schedules the nightly retention purge.
func startNotificationCleanup() {
	job := services.NewNotificationCleanupJobService(config.DB)

	c := cron.New()
	if _, err := c.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		purged, err := job.RunOnce(ctx, services.DefaultRetentionDays)
		if err != nil {
			if errors.Is(err, services.ErrCleanupAlreadyRunning) {
				log.Println("notification cleanup skipped, another runner holds the lock")
				return
			}
			log.Printf("notification cleanup failed: %v", err)
			return
		}
		log.Printf("notification cleanup purged %d notifications", purged)
	}); err != nil {
		log.Printf("Warning: failed to schedule notification cleanup: %v", err)
		return
	}
	c.Start()
}
