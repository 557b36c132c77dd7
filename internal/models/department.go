package models

import (
	"gorm.io/gorm"
)

// Department is a reference entity tasks point at via department_ids
type Department struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Description *string `json:"description"`
	gorm.Model
}

// TableName specifies the table name for Department Model
func (Department) TableName() string {
	return "tms_departments"
}
