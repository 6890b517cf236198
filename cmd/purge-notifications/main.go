// One-shot runner for the notification retention purge.
// cmd/purge-notifications/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"company-board-api/config"
	"company-board-api/services"
)

func main() {
	days := flag.Int("days", services.DefaultRetentionDays, "purge notifications older than this many days")
	timeout := flag.Duration("timeout", 5*time.Minute, "abort the run after this duration")
	flag.Parse()

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitDB()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	job := services.NewNotificationCleanupJobService(config.DB)
	purged, err := job.RunOnce(ctx, *days)
	if err != nil {
		if errors.Is(err, services.ErrCleanupAlreadyRunning) {
			log.Fatal("Another cleanup run holds the lock, try again later")
		}
		log.Fatal("Notification cleanup failed:", err)
	}

	log.Printf("Purged %d notifications older than %d days", purged, *days)
}
