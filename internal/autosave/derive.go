package autosave

import (
	"time"

	"tms-api/internal/models"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// CompletionEffect returns the field updates implied by setting a task's
// completed date. Status always becomes Completed; when the task has a
// parseable ETA the performance classification is derived from a calendar-date
// comparison (time-of-day never enters into it). Absent or malformed inputs
// skip the performance derivation rather than failing.
//
// Callers must only invoke this for a non-empty completed date; edits to any
// other field (including the ETA itself) never trigger a recompute.
func CompletionEffect(etaDate, completedDate string) map[string]any {
	updates := map[string]any{
		"status": models.StatusCompleted,
	}

	completed, err := time.Parse(DateLayout, completedDate)
	if err != nil {
		return updates
	}
	eta, err := time.Parse(DateLayout, etaDate)
	if err != nil {
		return updates
	}

	switch {
	case completed.Before(eta):
		updates["performance"] = models.PerformanceBeforeTime
	case completed.Equal(eta):
		updates["performance"] = models.PerformanceOnTime
	default:
		updates["performance"] = models.PerformanceDelayed
	}

	return updates
}
