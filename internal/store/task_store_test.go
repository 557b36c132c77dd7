package store

import (
	"testing"

	"tms-api/internal/models"
	"tms-api/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTaskStore_InsertAndListByProject(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	s := NewTaskStore(db)

	require.NoError(t, s.Insert(&models.Task{ID: "t-1", ProjectID: "proj-1", TaskDescription: "one"}))
	require.NoError(t, s.Insert(&models.Task{ID: "t-2", ProjectID: "proj-1", TaskDescription: "two"}))
	require.NoError(t, s.Insert(&models.Task{ID: "t-3", ProjectID: "proj-2", TaskDescription: "other"}))

	tasks, err := s.ListByProject("proj-1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		require.Equal(t, "proj-1", task.ProjectID)
	}
}

func TestTaskStore_UpdateFieldsWritesOnlyTheBatch(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	s := NewTaskStore(db)

	eta := "2024-03-10"
	require.NoError(t, s.Insert(&models.Task{
		ID:              "t-1",
		ProjectID:       "proj-1",
		TaskDescription: "original",
		ETADate:         &eta,
		Status:          models.StatusInProgress,
	}))

	err = s.UpdateFields("t-1", map[string]any{
		"completed_date": "2024-03-08",
		"status":         models.StatusCompleted,
		"performance":    models.PerformanceBeforeTime,
	})
	require.NoError(t, err)

	var got models.Task
	require.NoError(t, db.Where("id = ?", "t-1").First(&got).Error)
	require.Equal(t, "2024-03-08", *got.CompletedDate)
	require.Equal(t, models.StatusCompleted, got.Status)
	require.Equal(t, models.PerformanceBeforeTime, *got.Performance)
	// Untouched fields survive
	require.Equal(t, "original", got.TaskDescription)
	require.Equal(t, "2024-03-10", *got.ETADate)
}

func TestTaskStore_UpdateFieldsMissingTask(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	s := NewTaskStore(db)

	err = s.UpdateFields("ghost", map[string]any{"notes": "x"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskStore_Delete(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	s := NewTaskStore(db)

	require.NoError(t, s.Insert(&models.Task{ID: "t-1", ProjectID: "proj-1"}))
	require.NoError(t, s.Delete("t-1"))

	tasks, err := s.ListByProject("proj-1")
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestTaskStore_StringListRoundTrip(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	s := NewTaskStore(db)

	require.NoError(t, s.Insert(&models.Task{
		ID:            "t-1",
		ProjectID:     "proj-1",
		DepartmentIDs: models.StringList{"dep-1", "dep-2"},
		AssignedToIDs: models.StringList{},
	}))

	tasks, err := s.ListByProject("proj-1")
	require.NoError(t, err)
	require.Equal(t, models.StringList{"dep-1", "dep-2"}, tasks[0].DepartmentIDs)
	require.Empty(t, tasks[0].AssignedToIDs)
}
