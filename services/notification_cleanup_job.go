package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"company-board-api/config"
)

const cleanupLockName = "notification_cleanup"

// DefaultRetentionDays is how long notifications are kept when no explicit
// retention is configured.
const DefaultRetentionDays = 30

var ErrCleanupAlreadyRunning = errors.New("notification cleanup already running")

// NotificationCleanupJobService purges old notifications. A MySQL advisory
// lock keeps concurrent runners (cron schedule plus the CLI) exclusive.
type NotificationCleanupJobService struct {
	db            *gorm.DB
	notifications *NotificationService
}

// NewNotificationCleanupJobService constructs a NotificationCleanupJobService.
func NewNotificationCleanupJobService(db *gorm.DB) *NotificationCleanupJobService {
	if db == nil {
		db = config.DB
	}
	return &NotificationCleanupJobService{
		db:            db,
		notifications: NewNotificationService(db),
	}
}

// RunOnce deletes notifications older than the retention window and returns
// the purged count.
func (s *NotificationCleanupJobService) RunOnce(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = DefaultRetentionDays
	}
	db := s.db.WithContext(ctx)

	var status int
	if err := db.Raw("SELECT GET_LOCK(?, 0)", cleanupLockName).Scan(&status).Error; err != nil {
		return 0, fmt.Errorf("acquire cleanup lock: %w", err)
	}
	if status != 1 {
		return 0, ErrCleanupAlreadyRunning
	}
	defer func() {
		var released int
		if err := db.Raw("SELECT RELEASE_LOCK(?)", cleanupLockName).Scan(&released).Error; err != nil {
			log.Printf("notification cleanup: release lock failed: %v", err)
		}
	}()

	return s.notifications.DeleteOlderThan(days)
}
