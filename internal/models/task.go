package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// TaskStatus represents the workflow status of a task
type TaskStatus string

const (
	StatusYetToStart          TaskStatus = "Yet To Start"
	StatusInProgress          TaskStatus = "In Progress"
	StatusOnHold              TaskStatus = "On Hold"
	StatusClientReviewPending TaskStatus = "Client Review Pending"
	StatusCompleted           TaskStatus = "Completed"
)

// Priority represents the priority of a task
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Performance classifies an actual completion date against the task's ETA.
// It is derived when the completed date is set, never edited directly.
type Performance string

const (
	PerformanceBeforeTime Performance = "Before Time"
	PerformanceOnTime     Performance = "On Time"
	PerformanceDelayed    Performance = "Delayed"
)

// StringList stores a set of ids as a JSON array in a single text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		if len(v) == 0 {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal(v, l)
	case string:
		if v == "" {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported source type for StringList")
	}
}

// Contains reports whether id is present in the list.
func (l StringList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Task represents one row of the task grid.
// All date fields are plain calendar dates formatted as YYYY-MM-DD.
type Task struct {
	ID                      string       `json:"id" gorm:"primaryKey"`
	ProjectID               string       `json:"project_id" gorm:"column:project_id;index"`
	TaskDescription         string       `json:"task_description" gorm:"column:task_description"`
	AssignedByStakeholderID *string      `json:"assigned_by_stakeholder_id" gorm:"column:assigned_by_stakeholder_id"`
	Priority                *Priority    `json:"priority"`
	AssignedDate            *string      `json:"assigned_date" gorm:"column:assigned_date"`
	ETADate                 *string      `json:"eta_date" gorm:"column:eta_date"`
	DepartmentIDs           StringList   `json:"department_ids" gorm:"column:department_ids;type:text"`
	AssignedToIDs           StringList   `json:"assigned_to_ids" gorm:"column:assigned_to_ids;type:text"`
	AssignedByPM            bool         `json:"assigned_by_pm" gorm:"column:assigned_by_pm"`
	Status                  TaskStatus   `json:"status" gorm:"not null;default:'Yet To Start'"`
	RequireQA               bool         `json:"require_qa" gorm:"column:require_qa"`
	CompletedDate           *string      `json:"completed_date" gorm:"column:completed_date"`
	Performance             *Performance `json:"performance"`
	Notes                   *string      `json:"notes"`
	CreatedBy               *string      `json:"created_by" gorm:"column:created_by"`
	gorm.Model
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tms_tasks"
}
