package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"company-board-api/config"
	"company-board-api/models"
)

// NotificationService owns the per-user inbox rows. One row per recipient;
// broadcast inserts are all-or-nothing within a single transaction.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(db *gorm.DB) *NotificationService {
	if db == nil {
		db = config.DB
	}
	return &NotificationService{db: db}
}

// Send creates a single unread notification for one user.
func (s *NotificationService) Send(userID int, notifType models.NotificationType, title, content string, relatedID *int) (*models.Notification, error) {
	n := models.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Content:   content,
		RelatedID: relatedID,
		IsRead:    false,
		CreateAt:  time.Now(),
	}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// Broadcast fans one event out to every active user except the actor.
// There is no idempotency key: calling it twice duplicates the rows.
func (s *NotificationService) Broadcast(notifType models.NotificationType, title, content string, relatedID *int, excludeUserID int) ([]models.Notification, error) {
	q := s.db.Where("is_active = ?", true)
	if excludeUserID != 0 {
		q = q.Where("user_id <> ?", excludeUserID)
	}

	var recipients []models.User
	if err := q.Find(&recipients).Error; err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return []models.Notification{}, nil
	}

	now := time.Now()
	notifications := make([]models.Notification, 0, len(recipients))
	for _, u := range recipients {
		notifications = append(notifications, models.Notification{
			UserID:    u.UserID,
			Type:      notifType,
			Title:     title,
			Content:   content,
			RelatedID: relatedID,
			IsRead:    false,
			CreateAt:  now,
		})
	}

	if err := s.db.Create(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// ListForUser returns a page of somebody's notifications, newest first.
func (s *NotificationService) ListForUser(userID, skip, limit int, unreadOnly bool) ([]models.Notification, error) {
	q := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var items []models.Notification
	err := q.Order("create_at DESC").Limit(limit).Offset(skip).Find(&items).Error
	return items, err
}

// UnreadCount returns the number of unread notifications for a user.
func (s *NotificationService) UnreadCount(userID int) (int64, error) {
	var n int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// MarkAsRead flips one notification to read. Returns false when the row
// does not exist; marking an already-read row reports success.
func (s *NotificationService) MarkAsRead(notificationID int) (bool, error) {
	var n models.Notification
	if err := s.db.First(&n, "notification_id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.db.Model(&models.Notification{}).
		Where("notification_id = ?", notificationID).
		Update("is_read", true).Error; err != nil {
		return false, err
	}
	return true, nil
}

// MarkAllAsRead marks every unread notification of a user and returns the
// affected count.
func (s *NotificationService) MarkAllAsRead(userID int) (int64, error) {
	res := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// Get loads one notification; used by handlers for ownership checks.
func (s *NotificationService) Get(notificationID int) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.First(&n, "notification_id = ?", notificationID).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete hard-deletes one notification. Returns false when it is missing.
func (s *NotificationService) Delete(notificationID int) (bool, error) {
	res := s.db.Delete(&models.Notification{}, "notification_id = ?", notificationID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteOlderThan purges notifications older than the cutoff, read or not.
// Maintenance operation; not exposed over HTTP.
func (s *NotificationService) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	res := s.db.Delete(&models.Notification{}, "create_at < ?", cutoff)
	return res.RowsAffected, res.Error
}
