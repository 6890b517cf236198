package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"

	"company-board-api/services"
)

const (
	downloadURLExpiry = 24 * time.Hour
	previewURLExpiry  = time.Hour
)

// FileController resolves stored file keys to URLs or bytes.
type FileController struct {
	storage services.FileStorage
}

func NewFileController(storage services.FileStorage) *FileController {
	return &FileController{storage: storage}
}

// DownloadURL returns a signed download URL for a stored key.
func (fc *FileController) DownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file key is required"})
		return
	}

	signedURL, err := fc.storage.SignedURL(key, downloadURLExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": signedURL})
}

// PreviewURL returns a short-lived URL plus a coarse type hint for the
// frontend viewer.
func (fc *FileController) PreviewURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file key is required"})
		return
	}

	signedURL, err := fc.storage.SignedURL(key, previewURLExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate preview URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"url":          signedURL,
		"preview_type": previewType(key),
	})
}

// DownloadLocal streams a locally stored file. The original file name goes
// into Content-Disposition, RFC 5987 encoded when it is not plain ASCII.
func (fc *FileController) DownloadLocal(c *gin.Context) {
	rawPath := strings.TrimPrefix(c.Param("path"), "/")
	if rawPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file key is required"})
		return
	}

	key, err := url.QueryUnescape(rawPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file key"})
		return
	}

	fileName := c.DefaultQuery("file_name", "download")
	if decoded, err := url.QueryUnescape(fileName); err == nil {
		fileName = decoded
	}

	content, err := fc.storage.Read(key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.Header("Content-Disposition", contentDisposition(fileName))
	c.Data(http.StatusOK, "application/octet-stream", content)
}

func contentDisposition(fileName string) string {
	if isASCII(fileName) {
		return fmt.Sprintf("attachment; filename=%q", fileName)
	}
	// RFC 5987 encoding for non-ASCII names.
	return fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(fileName))
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// previewType maps a file name to the viewer category the frontend knows.
func previewType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg":
		return "image"
	case ".pdf":
		return "pdf"
	case ".txt", ".md", ".json", ".xml", ".html", ".css", ".js", ".ts":
		return "text"
	case ".mp4", ".webm", ".avi", ".mov":
		return "video"
	case ".mp3", ".wav", ".ogg", ".flac", ".aac":
		return "audio"
	case ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx":
		return "office"
	case ".zip", ".rar", ".7z", ".tar", ".gz":
		return "archive"
	default:
		return "unknown"
	}
}
