package models

import (
	"gorm.io/gorm"
)

// TeamMember belongs to a department and can be assigned to tasks
type TeamMember struct {
	ID           string  `json:"id" gorm:"primaryKey"`
	DepartmentID string  `json:"department_id" gorm:"column:department_id;index"`
	Name         string  `json:"name" gorm:"not null"`
	Email        string  `json:"email" gorm:"not null"`
	Role         *string `json:"role"`
	Designation  *string `json:"designation"`
	gorm.Model
}

// TableName specifies the table name for TeamMember Model
func (TeamMember) TableName() string {
	return "tms_team_members"
}
