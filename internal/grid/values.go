package grid

import (
	"fmt"

	"tms-api/internal/models"
)

// editableFields lists the task columns a grid cell edit may touch. Derived
// and identity columns (performance, id, project_id, created_by) are absent:
// performance only ever changes as a side effect of setting completed_date.
var editableFields = map[string]bool{
	"task_description":           true,
	"assigned_by_stakeholder_id": true,
	"priority":                   true,
	"assigned_date":              true,
	"eta_date":                   true,
	"department_ids":             true,
	"assigned_to_ids":            true,
	"assigned_by_pm":             true,
	"status":                     true,
	"require_qa":                 true,
	"completed_date":             true,
	"notes":                      true,
}

// EffectiveValue returns the pending (unflushed) value for field when one is
// queued, otherwise the persisted value. This is how derived changes show up
// in rows before their flush completes.
func EffectiveValue(persisted any, pending map[string]any, field string) any {
	if pending != nil {
		if v, ok := pending[field]; ok {
			return v
		}
	}
	return persisted
}

// enumString unwraps the string-typed enums the derive step produces alongside
// the plain strings JSON decoding produces.
func enumString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case models.TaskStatus:
		return string(s), true
	case models.Priority:
		return string(s), true
	case models.Performance:
		return string(s), true
	default:
		return "", false
	}
}

// optString maps a JSON value to a nullable string column value.
func optString(v any) *string {
	if s, ok := enumString(v); ok && s != "" {
		return &s
	}
	return nil
}

func toStringList(v any) models.StringList {
	switch vv := v.(type) {
	case nil:
		return models.StringList{}
	case models.StringList:
		return vv
	case []string:
		return models.StringList(vv)
	case []any:
		out := make(models.StringList, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return models.StringList{}
	}
}

// applyField writes a single edited value onto the in-memory task. Values
// arrive either as decoded JSON (string, bool, nil, []any) or as the typed
// enums produced by the completion derivation.
func applyField(t *models.Task, field string, value any) error {
	switch field {
	case "task_description":
		if s, ok := enumString(value); ok {
			t.TaskDescription = s
		}
	case "assigned_by_stakeholder_id":
		t.AssignedByStakeholderID = optString(value)
	case "priority":
		if s := optString(value); s != nil {
			p := models.Priority(*s)
			t.Priority = &p
		} else {
			t.Priority = nil
		}
	case "assigned_date":
		t.AssignedDate = optString(value)
	case "eta_date":
		t.ETADate = optString(value)
	case "department_ids":
		t.DepartmentIDs = toStringList(value)
	case "assigned_to_ids":
		t.AssignedToIDs = toStringList(value)
	case "assigned_by_pm":
		if b, ok := value.(bool); ok {
			t.AssignedByPM = b
		}
	case "status":
		if s, ok := enumString(value); ok {
			t.Status = models.TaskStatus(s)
		}
	case "require_qa":
		if b, ok := value.(bool); ok {
			t.RequireQA = b
		}
	case "completed_date":
		t.CompletedDate = optString(value)
	case "performance":
		if s := optString(value); s != nil {
			p := models.Performance(*s)
			t.Performance = &p
		} else {
			t.Performance = nil
		}
	case "notes":
		t.Notes = optString(value)
	default:
		return fmt.Errorf("unknown task field %q", field)
	}
	return nil
}
