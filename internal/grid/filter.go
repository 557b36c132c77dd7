package grid

import (
	"tms-api/internal/models"
)

// FilterAny is the wildcard value for a filter dimension.
const FilterAny = "all"

// Filter is a read-side projection over the task list. Dimensions compose by
// logical AND; an empty or "all" value imposes no restriction on that
// dimension. Date bounds are inclusive YYYY-MM-DD strings.
type Filter struct {
	Status       string
	Priority     string
	DepartmentID string
	AssignedFrom string
	AssignedTo   string
}

func wildcard(v string) bool {
	return v == "" || v == FilterAny
}

// Match reports whether the task passes every set dimension. When either date
// bound is set, tasks without an assigned date are excluded.
func (f Filter) Match(t models.Task) bool {
	if !wildcard(f.Status) && string(t.Status) != f.Status {
		return false
	}
	if !wildcard(f.Priority) && (t.Priority == nil || string(*t.Priority) != f.Priority) {
		return false
	}
	if !wildcard(f.DepartmentID) && !t.DepartmentIDs.Contains(f.DepartmentID) {
		return false
	}
	if f.AssignedFrom != "" || f.AssignedTo != "" {
		if t.AssignedDate == nil || *t.AssignedDate == "" {
			return false
		}
		// YYYY-MM-DD orders lexicographically
		if f.AssignedFrom != "" && *t.AssignedDate < f.AssignedFrom {
			return false
		}
		if f.AssignedTo != "" && *t.AssignedDate > f.AssignedTo {
			return false
		}
	}
	return true
}

// FilterTasks returns the subset of tasks matching f, preserving order.
func FilterTasks(tasks []models.Task, f Filter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
