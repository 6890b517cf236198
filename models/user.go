package models

import (
	"time"
)

// UserRole is a closed set; anything else is rejected at the boundary.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

type User struct {
	UserID   int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username string     `gorm:"column:username;unique" json:"username"`
	Email    string     `gorm:"column:email;unique" json:"email"`
	Password string     `gorm:"column:password" json:"-"`
	FullName string     `gorm:"column:full_name" json:"full_name"`
	Role     UserRole   `gorm:"column:role;type:varchar(16);index" json:"role"`
	IsActive bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse is the representation returned by the API (no password hash).
type UserResponse struct {
	UserID   int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
	IsActive bool     `json:"is_active"`
	CreateAt string   `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		IsActive: u.IsActive,
		CreateAt: u.CreateAt.Format(time.RFC3339),
	}
}
