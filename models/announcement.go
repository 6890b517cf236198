package models

import "time"

type AnnouncementType string

const (
	TypeAnnouncement AnnouncementType = "announcement"
	TypeInquiry      AnnouncementType = "inquiry"
)

func (t AnnouncementType) IsValid() bool {
	switch t {
	case TypeAnnouncement, TypeInquiry:
		return true
	}
	return false
}

type Announcement struct {
	AnnouncementID int              `gorm:"primaryKey;column:announcement_id" json:"id"`
	Title          string           `gorm:"column:title" json:"title"`
	Content        string           `gorm:"column:content;type:text" json:"content"`
	Type           AnnouncementType `gorm:"column:type;type:varchar(16);index" json:"type"`
	FileKey        *string          `gorm:"column:file_key" json:"file_key,omitempty"`
	FileName       *string          `gorm:"column:file_name" json:"file_name,omitempty"`
	CreateAt       time.Time        `gorm:"column:create_at;index" json:"created_at"`
	UpdateAt       *time.Time       `gorm:"column:update_at" json:"updated_at,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// AnnouncementWithResponses is the detail view payload.
type AnnouncementWithResponses struct {
	Announcement
	Responses []Response `json:"responses"`
}
