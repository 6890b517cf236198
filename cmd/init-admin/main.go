// Seeds the initial admin account.
// cmd/init-admin/main.go
package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"company-board-api/config"
	"company-board-api/models"
	"company-board-api/utils"
)

func getenv(key, fallback string) string {
	return utils.DefaultString(os.Getenv(key), fallback)
}

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitDB()
	config.MigrateDB()

	username := getenv("ADMIN_USERNAME", "admin")
	email := getenv("ADMIN_EMAIL", "admin@example.com")
	password := getenv("ADMIN_PASSWORD", "")
	fullName := getenv("ADMIN_FULL_NAME", "Administrator")

	if password == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}

	var count int64
	if err := config.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		log.Fatal("Failed to check existing admin:", err)
	}
	if count > 0 {
		log.Printf("Admin user %q already exists, nothing to do", username)
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	admin := models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		FullName: fullName,
		Role:     models.RoleAdmin,
		IsActive: true,
		CreateAt: time.Now(),
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Printf("Admin user %q created", username)
}
