package models

import "time"

// Response is a reply to one announcement. The author is a free-text
// colleague name, not a user reference.
type Response struct {
	ResponseID     int       `gorm:"primaryKey;column:response_id" json:"id"`
	AnnouncementID int       `gorm:"column:announcement_id;index" json:"announcement_id"`
	ColleagueName  string    `gorm:"column:colleague_name;index" json:"colleague_name"`
	Content        string    `gorm:"column:content;type:text" json:"content"`
	FileKey        *string   `gorm:"column:file_key" json:"file_key,omitempty"`
	FileName       *string   `gorm:"column:file_name" json:"file_name,omitempty"`
	CreateAt       time.Time `gorm:"column:create_at;index" json:"created_at"`
}

func (Response) TableName() string {
	return "responses"
}

// ResponseWithAnnouncement carries the parent title for listing views.
type ResponseWithAnnouncement struct {
	Response
	AnnouncementTitle string `json:"announcement_title"`
}
