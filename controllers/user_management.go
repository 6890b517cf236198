package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"company-board-api/models"
	"company-board-api/utils"
)

// UserManagementController is the admin-only user surface. Every
// destructive action rejects self-targeting: an admin cannot change their
// own role or status, or delete their own account.
type UserManagementController struct {
	db *gorm.DB
}

func NewUserManagementController(db *gorm.DB) *UserManagementController {
	return &UserManagementController{db: db}
}

type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type UpdateUserRequest struct {
	Username *string          `json:"username"`
	Email    *string          `json:"email"`
	FullName *string          `json:"full_name"`
	Role     *models.UserRole `json:"role"`
}

// List returns a page of users with a total count.
func (uc *UserManagementController) List(c *gin.Context) {
	skip, limit := parseSkipLimit(c, 100, 500)

	var total int64
	if err := uc.db.Model(&models.User{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	var users []models.User
	if err := uc.db.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"total": total,
		"skip":  skip,
		"limit": limit,
		"users": responses,
	})
}

// UpdateRole changes another user's role.
func (uc *UserManagementController) UpdateRole(c *gin.Context) {
	adminID, _ := getCurrentUserID(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Role.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var user models.User
	if err := uc.db.First(&user, "user_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.UserID == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own role"})
		return
	}

	now := time.Now()
	user.Role = req.Role
	user.UpdateAt = &now
	if err := uc.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Role updated"})
}

// UpdateStatus activates or deactivates another user.
func (uc *UserManagementController) UpdateStatus(c *gin.Context) {
	adminID, _ := getCurrentUserID(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := uc.db.First(&user, "user_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.UserID == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own status"})
		return
	}

	now := time.Now()
	user.IsActive = *req.IsActive
	user.UpdateAt = &now
	if err := uc.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated"})
}

// Update edits profile fields. Self-editing is allowed except for the role.
func (uc *UserManagementController) Update(c *gin.Context) {
	adminID, _ := getCurrentUserID(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := uc.db.First(&user, "user_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.UserID == adminID && req.Role != nil && *req.Role != user.Role {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own role"})
		return
	}

	if req.Username != nil {
		username := utils.SanitizeInput(*req.Username)
		if username != "" && username != user.Username {
			var count int64
			if err := uc.db.Model(&models.User{}).
				Where("username = ? AND user_id <> ?", username, id).
				Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
				return
			}
			user.Username = username
		}
	}

	if req.Email != nil && *req.Email != "" && *req.Email != user.Email {
		var count int64
		if err := uc.db.Model(&models.User{}).
			Where("email = ? AND user_id <> ?", *req.Email, id).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already used by another user"})
			return
		}
		user.Email = *req.Email
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		user.Role = *req.Role
	}

	now := time.Now()
	user.UpdateAt = &now
	if err := uc.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated"})
}

// Delete removes another user's account.
func (uc *UserManagementController) Delete(c *gin.Context) {
	adminID, _ := getCurrentUserID(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var user models.User
	if err := uc.db.First(&user, "user_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.UserID == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	if err := uc.db.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}
