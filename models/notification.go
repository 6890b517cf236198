package models

import "time"

type NotificationType string

const (
	NotifyNewAnnouncement NotificationType = "new_announcement"
	NotifyNewResponse     NotificationType = "new_response"
	NotifySystem          NotificationType = "system"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifyNewAnnouncement, NotifyNewResponse, NotifySystem:
		return true
	}
	return false
}

type Notification struct {
	NotificationID int              `gorm:"primaryKey;column:notification_id" json:"id"`
	UserID         int              `gorm:"column:user_id;index:idx_notifications_user_read" json:"user_id"`
	Type           NotificationType `gorm:"column:type;type:varchar(32)" json:"type"`
	Title          string           `gorm:"column:title" json:"title"`
	Content        string           `gorm:"column:content;type:text" json:"content"`
	IsRead         bool             `gorm:"column:is_read;index:idx_notifications_user_read" json:"is_read"`
	RelatedID      *int             `gorm:"column:related_id" json:"related_id,omitempty"`
	CreateAt       time.Time        `gorm:"column:create_at;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
