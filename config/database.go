package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"company-board-api/models"
)

var DB *gorm.DB

func InitDB() {
	var err error

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbDatabase := os.Getenv("DB_DATABASE")
	dbUsername := os.Getenv("DB_USERNAME")
	dbPassword := os.Getenv("DB_PASSWORD")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbUsername,
		dbPassword,
		dbHost,
		dbPort,
		dbDatabase,
	)

	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	debugSQL := strings.ToLower(os.Getenv("DEBUG_SQL"))

	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	logLevel := logger.Info
	if environment == "production" && debugSQL != "true" {
		logLevel = logger.Warn
	}

	config := &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	}

	DB, err = gorm.Open(mysql.Open(dsn), config)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connected successfully")
}

// MigrateDB creates the schema and the full-text indexes the search
// endpoints rely on. Safe to run on every start.
func MigrateDB() {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Announcement{},
		&models.Response{},
		&models.Notification{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fulltext := []string{
		"CREATE FULLTEXT INDEX idx_announcements_fulltext ON announcements (title, content)",
		"CREATE FULLTEXT INDEX idx_responses_fulltext ON responses (colleague_name, content)",
	}
	for _, stmt := range fulltext {
		if err := DB.Exec(stmt).Error; err != nil && !isDuplicateIndexErr(err) {
			log.Printf("Warning: full-text index creation failed: %v", err)
		}
	}

	log.Println("Database schema is up to date")
}

// MySQL error 1061 = index already exists.
func isDuplicateIndexErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "1061") || strings.Contains(msg, "Duplicate key name")
}
