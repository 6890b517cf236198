package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"company-board-api/models"
	"company-board-api/services"
	"company-board-api/utils"
)

// AnnouncementController handles the top-level posted items.
type AnnouncementController struct {
	db            *gorm.DB
	notifications *services.NotificationService
	storage       services.FileStorage
}

func NewAnnouncementController(db *gorm.DB, notifications *services.NotificationService, storage services.FileStorage) *AnnouncementController {
	return &AnnouncementController{
		db:            db,
		notifications: notifications,
		storage:       storage,
	}
}

// Create posts a new announcement from a multipart form. The attachment is
// optional and its upload failure never blocks the announcement itself.
// The fan-out happens after the announcement is committed; a failed
// broadcast leaves the announcement in place.
func (ac *AnnouncementController) Create(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	title := utils.SanitizeInput(c.PostForm("title"))
	content := utils.SanitizeInput(c.PostForm("content"))
	if title == "" || content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	annType := models.AnnouncementType(utils.DefaultString(c.PostForm("type"), string(models.TypeAnnouncement)))
	if !annType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement type"})
		return
	}

	var fileKey, fileName *string
	if header, err := c.FormFile("file"); err == nil {
		fileKey, fileName = uploadAttachment(c.Request.Context(), ac.storage, header)
	}

	announcement := models.Announcement{
		Title:    title,
		Content:  content,
		Type:     annType,
		FileKey:  fileKey,
		FileName: fileName,
		CreateAt: time.Now(),
	}
	if err := ac.db.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	notifType := models.NotifyNewAnnouncement
	if annType == models.TypeInquiry {
		notifType = models.NotifyNewResponse
	}

	relatedID := announcement.AnnouncementID
	if _, err := ac.notifications.Broadcast(
		notifType,
		fmt.Sprintf("New %s: %s", annType, title),
		fmt.Sprintf("%s posted a new %s", getCurrentFullName(c), annType),
		&relatedID,
		userID,
	); err != nil {
		// The announcement is already committed; losing the fan-out is
		// accepted and logged for follow-up.
		log.Printf("broadcast for announcement %d failed: %v", announcement.AnnouncementID, err)
	}

	c.JSON(http.StatusCreated, announcement)
}

// List returns a page of announcements, newest first, optionally filtered
// by type.
func (ac *AnnouncementController) List(c *gin.Context) {
	skip, limit := parseSkipLimit(c, 10, 100)

	query := ac.db.Model(&models.Announcement{})
	if t := c.Query("type"); t != "" {
		annType := models.AnnouncementType(t)
		if !annType.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement type"})
			return
		}
		query = query.Where("type = ?", annType)
	}

	var announcements []models.Announcement
	if err := query.Order("create_at DESC").Offset(skip).Limit(limit).Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}

	c.JSON(http.StatusOK, announcements)
}

// Get returns one announcement together with its responses, newest first.
func (ac *AnnouncementController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}

	var announcement models.Announcement
	if err := ac.db.First(&announcement, "announcement_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	var responses []models.Response
	if err := ac.db.Where("announcement_id = ?", id).
		Order("create_at DESC").
		Find(&responses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
		return
	}

	c.JSON(http.StatusOK, models.AnnouncementWithResponses{
		Announcement: announcement,
		Responses:    responses,
	})
}

// Delete removes an announcement and all of its responses in one
// transaction. Admin only.
func (ac *AnnouncementController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}

	var announcement models.Announcement
	if err := ac.db.First(&announcement, "announcement_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	err := ac.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Response{}, "announcement_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Announcement{}, "announcement_id = ?", id).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Announcement deleted"})
}
