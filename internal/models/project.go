package models

import (
	"gorm.io/gorm"
)

// Project groups tasks and stakeholders under one engagement
type Project struct {
	ID           string  `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null"`
	Description  *string `json:"description"`
	AssignedPMID *string `json:"assigned_pm_id" gorm:"column:assigned_pm_id"`
	CreatedBy    *string `json:"created_by" gorm:"column:created_by"`
	gorm.Model
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "tms_projects"
}
