package models

import (
	"gorm.io/gorm"
)

// UserRole distinguishes administrators from project managers.
type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleProjectManager UserRole = "project_manager"
)

// UserProfile represents an authenticated user of the system
type UserProfile struct {
	ID           string   `json:"id" gorm:"primaryKey"`
	Email        string   `json:"email" gorm:"unique;not null"`
	FullName     *string  `json:"full_name" gorm:"column:full_name"`
	Role         UserRole `json:"role" gorm:"not null;default:'project_manager'"`
	PasswordHash string   `json:"-" gorm:"column:password_hash;not null"`
	gorm.Model
}

// TableName specifies the table name for UserProfile Model
func (UserProfile) TableName() string {
	return "user_profiles"
}
