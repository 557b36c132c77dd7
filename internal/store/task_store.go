package store

import (
	"gorm.io/gorm"

	"tms-api/internal/models"
)

// TaskStore is the persistence collaborator for the task grid: record CRUD by
// id over the tasks table. Partial updates go through gorm's map form so a
// flush writes exactly the merged fields and nothing else.
type TaskStore struct {
	db *gorm.DB
}

// NewTaskStore constructs a TaskStore over db.
func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

// ListByProject returns the project's tasks, newest first.
func (s *TaskStore) ListByProject(projectID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("project_id = ?", projectID).
		Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateFields applies a merged field batch to one task. Updating a task that
// no longer exists is an error so the flush can report it.
func (s *TaskStore) UpdateFields(taskID string, fields map[string]any) error {
	res := s.db.Model(&models.Task{}).Where("id = ?", taskID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Insert creates a task row.
func (s *TaskStore) Insert(task *models.Task) error {
	return s.db.Create(task).Error
}

// Delete removes a task row by id.
func (s *TaskStore) Delete(taskID string) error {
	return s.db.Where("id = ?", taskID).Delete(&models.Task{}).Error
}
