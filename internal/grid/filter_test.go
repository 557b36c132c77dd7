package grid

import (
	"testing"

	"tms-api/internal/models"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func priPtr(p models.Priority) *models.Priority { return &p }

func sampleTasks() []models.Task {
	return []models.Task{
		{
			ID:            "t-1",
			Status:        models.StatusCompleted,
			Priority:      priPtr(models.PriorityHigh),
			DepartmentIDs: models.StringList{"dep-1"},
			AssignedDate:  strPtr("2024-03-01"),
		},
		{
			ID:            "t-2",
			Status:        models.StatusInProgress,
			Priority:      priPtr(models.PriorityHigh),
			DepartmentIDs: models.StringList{"dep-2"},
			AssignedDate:  strPtr("2024-03-15"),
		},
		{
			ID:     "t-3",
			Status: models.StatusCompleted,
			// no priority, no departments, no assigned date
		},
	}
}

func ids(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterTasks_SingleDimension(t *testing.T) {
	tasks := sampleTasks()

	got := FilterTasks(tasks, Filter{Status: "Completed"})
	require.Equal(t, []string{"t-1", "t-3"}, ids(got))

	got = FilterTasks(tasks, Filter{Priority: "High"})
	require.Equal(t, []string{"t-1", "t-2"}, ids(got))

	got = FilterTasks(tasks, Filter{DepartmentID: "dep-2"})
	require.Equal(t, []string{"t-2"}, ids(got))
}

func TestFilterTasks_DimensionsComposeByAND(t *testing.T) {
	tasks := sampleTasks()

	got := FilterTasks(tasks, Filter{Status: "Completed", Priority: "High"})
	require.Equal(t, []string{"t-1"}, ids(got))
}

func TestFilterTasks_WildcardImposesNoRestriction(t *testing.T) {
	tasks := sampleTasks()

	require.Len(t, FilterTasks(tasks, Filter{}), 3)
	require.Len(t, FilterTasks(tasks, Filter{Status: FilterAny, Priority: FilterAny, DepartmentID: FilterAny}), 3)
}

func TestFilterTasks_DateRange(t *testing.T) {
	tasks := sampleTasks()

	// Bounds are inclusive; tasks without an assigned date are excluded
	got := FilterTasks(tasks, Filter{AssignedFrom: "2024-03-01", AssignedTo: "2024-03-10"})
	require.Equal(t, []string{"t-1"}, ids(got))

	got = FilterTasks(tasks, Filter{AssignedFrom: "2024-03-02"})
	require.Equal(t, []string{"t-2"}, ids(got))

	got = FilterTasks(tasks, Filter{AssignedTo: "2024-03-20"})
	require.Equal(t, []string{"t-1", "t-2"}, ids(got))
}

func TestFilterTasks_NoPriorityNeverMatchesSetPriority(t *testing.T) {
	tasks := sampleTasks()

	got := FilterTasks(tasks, Filter{Priority: "Low"})
	require.Empty(t, got)
}
