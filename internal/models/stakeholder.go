package models

import (
	"gorm.io/gorm"
)

// Stakeholder is a project contact who can assign tasks
type Stakeholder struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	ProjectID   string  `json:"project_id" gorm:"column:project_id;index"`
	Name        string  `json:"name" gorm:"not null"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Designation *string `json:"designation"`
	gorm.Model
}

// TableName specifies the table name for Stakeholder Model
func (Stakeholder) TableName() string {
	return "tms_stakeholders"
}
