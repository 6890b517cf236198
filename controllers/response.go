package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"company-board-api/models"
	"company-board-api/services"
	"company-board-api/utils"
)

// ResponseController handles replies to announcements. Creation is
// deliberately unauthenticated, matching how the board is used on the
// floor; the admin listing is the only protected surface here.
type ResponseController struct {
	db      *gorm.DB
	storage services.FileStorage
}

func NewResponseController(db *gorm.DB, storage services.FileStorage) *ResponseController {
	return &ResponseController{db: db, storage: storage}
}

// Create posts a reply from a multipart form. The parent announcement must
// exist; the attachment is optional and non-fatal.
func (rc *ResponseController) Create(c *gin.Context) {
	announcementID, err := strconv.Atoi(c.PostForm("announcement_id"))
	if err != nil || announcementID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement_id"})
		return
	}

	colleagueName := utils.SanitizeInput(c.PostForm("colleague_name"))
	content := utils.SanitizeInput(c.PostForm("content"))
	if colleagueName == "" || content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "colleague_name and content are required"})
		return
	}

	var announcement models.Announcement
	if err := rc.db.First(&announcement, "announcement_id = ?", announcementID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	var fileKey, fileName *string
	if header, err := c.FormFile("file"); err == nil {
		fileKey, fileName = uploadAttachment(c.Request.Context(), rc.storage, header)
	}

	response := models.Response{
		AnnouncementID: announcementID,
		ColleagueName:  colleagueName,
		Content:        content,
		FileKey:        fileKey,
		FileName:       fileName,
		CreateAt:       time.Now(),
	}
	if err := rc.db.Create(&response).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create response"})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListByAnnouncement returns a page of replies to one announcement.
func (rc *ResponseController) ListByAnnouncement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}

	skip, limit := parseSkipLimit(c, 100, 100)

	var responses []models.Response
	if err := rc.db.Where("announcement_id = ?", id).
		Order("create_at DESC").
		Offset(skip).Limit(limit).
		Find(&responses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
		return
	}

	c.JSON(http.StatusOK, responses)
}

// ListByColleague returns one author's replies joined with the parent
// announcement titles.
func (rc *ResponseController) ListByColleague(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "colleague name is required"})
		return
	}

	skip, limit := parseSkipLimit(c, 100, 100)

	var rows []models.ResponseWithAnnouncement
	if err := rc.db.Model(&models.Response{}).
		Select("responses.*, announcements.title AS announcement_title").
		Joins("JOIN announcements ON responses.announcement_id = announcements.announcement_id").
		Where("responses.colleague_name = ?", name).
		Order("responses.create_at DESC").
		Offset(skip).Limit(limit).
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ListAll is the admin listing with optional filters.
func (rc *ResponseController) ListAll(c *gin.Context) {
	skip, limit := parseSkipLimit(c, 100, 100)

	query := rc.db.Model(&models.Response{})
	if v := c.Query("announcement_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement_id"})
			return
		}
		query = query.Where("announcement_id = ?", id)
	}
	if v := c.Query("colleague_name"); v != "" {
		query = query.Where("colleague_name = ?", v)
	}

	var responses []models.Response
	if err := query.Order("create_at DESC").Offset(skip).Limit(limit).Find(&responses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
		return
	}

	c.JSON(http.StatusOK, responses)
}
