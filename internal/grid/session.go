package grid

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"tms-api/internal/autosave"
	"tms-api/internal/models"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when an edit names a task absent from the
// session's loaded project.
var ErrTaskNotFound = errors.New("task not found in session")

// ErrNoProject is returned when the session has no project selected yet.
var ErrNoProject = errors.New("no project selected")

// TaskStore is the persistence collaborator the session writes through.
type TaskStore interface {
	ListByProject(projectID string) ([]models.Task, error)
	UpdateFields(taskID string, fields map[string]any) error
	Insert(task *models.Task) error
	Delete(taskID string) error
}

// EmitFunc publishes a session event (auto_saving, tasks_saved, save_failed,
// task lifecycle) to the session's user, typically over the websocket hub.
type EmitFunc func(event map[string]any)

// SessionOptions controls construction of a Session.
type SessionOptions struct {
	QuietPeriod time.Duration
	Emit        EmitFunc
}

// Session owns one user's task grid: the optimistic in-memory task list for
// the selected project, the pending-edit ledger and the debounced flush
// scheduler. Edits apply to the in-memory list immediately; the scheduler
// persists them after the quiet period. Failed writes are not rolled back in
// the view but the affected task is marked unsynced and surfaced to the
// caller.
type Session struct {
	userID string
	store  TaskStore
	emit   EmitFunc

	ledger *autosave.Ledger
	sched  *autosave.Scheduler

	mu        sync.Mutex
	projectID string
	tasks     []models.Task
	unsynced  map[string]struct{}
	lastSaved time.Time
}

// NewSession constructs a session for one user.
func NewSession(userID string, store TaskStore, opts SessionOptions) *Session {
	s := &Session{
		userID:   userID,
		store:    store,
		emit:     opts.Emit,
		ledger:   autosave.NewLedger(),
		unsynced: make(map[string]struct{}),
	}
	s.sched = autosave.NewScheduler(s.ledger, store, autosave.SchedulerOptions{
		QuietPeriod:    opts.QuietPeriod,
		OnResult:       s.handleWriteResult,
		OnSavingChange: s.handleSavingChange,
	})
	return s
}

// SelectProject loads the task list for projectID into the session. Pending
// edits for the previous project stay in the ledger and flush on their own
// schedule; only the view is replaced.
func (s *Session) SelectProject(projectID string) ([]models.Task, error) {
	tasks, err := s.store.ListByProject(projectID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.projectID = projectID
	s.tasks = tasks
	s.unsynced = make(map[string]struct{})
	s.mu.Unlock()

	return tasks, nil
}

// ProjectID returns the currently selected project id, or "".
func (s *Session) ProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectID
}

// EditCell records a single cell edit: derives completion side effects when
// the completed date is being set, merges the updates into the ledger,
// applies them optimistically to the in-memory task, and re-arms the flush
// timer. The write itself happens later, after the quiet period.
func (s *Session) EditCell(taskID, field string, value any) error {
	if !editableFields[field] {
		return fmt.Errorf("field %q is not editable", field)
	}

	s.mu.Lock()
	idx := s.indexOf(taskID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrTaskNotFound
	}

	updates := map[string]any{field: value}
	if field == "completed_date" {
		if completed, ok := enumString(value); ok && completed != "" {
			eta := ""
			if s.tasks[idx].ETADate != nil {
				eta = *s.tasks[idx].ETADate
			}
			for k, v := range autosave.CompletionEffect(eta, completed) {
				updates[k] = v
			}
		}
	}

	s.ledger.Merge(taskID, updates)
	for k, v := range updates {
		if err := applyField(&s.tasks[idx], k, v); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.mu.Unlock()

	s.sched.NotifyEdit()
	return nil
}

// AddTask inserts a fresh task with grid defaults into the selected project
// and prepends it to the view.
func (s *Session) AddTask() (*models.Task, error) {
	s.mu.Lock()
	projectID := s.projectID
	s.mu.Unlock()
	if projectID == "" {
		return nil, ErrNoProject
	}

	createdBy := s.userID
	task := &models.Task{
		ID:            uuid.NewString(),
		ProjectID:     projectID,
		Status:        models.StatusYetToStart,
		DepartmentIDs: models.StringList{},
		AssignedToIDs: models.StringList{},
		CreatedBy:     &createdBy,
	}
	if err := s.store.Insert(task); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tasks = append([]models.Task{*task}, s.tasks...)
	s.mu.Unlock()

	s.publish(map[string]any{"type": "task_created", "task_id": task.ID})
	return task, nil
}

// DeleteTask removes the task from the store, the view, and the ledger (any
// unflushed edits for it are discarded).
func (s *Session) DeleteTask(taskID string) error {
	if err := s.store.Delete(taskID); err != nil {
		return err
	}

	s.ledger.Remove(taskID)

	s.mu.Lock()
	if idx := s.indexOf(taskID); idx >= 0 {
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	}
	delete(s.unsynced, taskID)
	s.mu.Unlock()

	s.publish(map[string]any{"type": "task_deleted", "task_id": taskID})
	return nil
}

// Row is one grid row: the task with pending derived values shadowed in,
// plus whether a previous flush for it failed.
type Row struct {
	models.Task
	Dirty bool `json:"dirty"`
}

// Rows returns the filtered view. Performance is read through EffectiveValue
// so a queued derivation shows even before its flush lands.
func (s *Session) Rows(f Filter) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]Row, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !f.Match(t) {
			continue
		}
		var persisted any
		if t.Performance != nil {
			persisted = *t.Performance
		}
		if v := EffectiveValue(persisted, s.ledger.Peek(t.ID), "performance"); v != nil {
			if str, ok := enumString(v); ok {
				p := models.Performance(str)
				t.Performance = &p
			}
		}
		_, dirty := s.unsynced[t.ID]
		rows = append(rows, Row{Task: t, Dirty: dirty})
	}
	return rows
}

// Status describes the save state of the session.
type Status struct {
	AutoSaving bool       `json:"auto_saving"`
	Pending    int        `json:"pending"`
	LastSaved  *time.Time `json:"last_saved"`
	Unsynced   []string   `json:"unsynced"`
}

// Status reports whether writes are in flight, how many tasks have queued
// edits, when the last write succeeded, and which tasks failed to sync.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		AutoSaving: s.sched.Saving(),
		Pending:    s.ledger.Len(),
		Unsynced:   make([]string, 0, len(s.unsynced)),
	}
	if !s.lastSaved.IsZero() {
		t := s.lastSaved
		st.LastSaved = &t
	}
	for id := range s.unsynced {
		st.Unsynced = append(st.Unsynced, id)
	}
	sort.Strings(st.Unsynced)
	return st
}

// FlushNow drains and writes immediately, returning once the batch completes.
func (s *Session) FlushNow() {
	s.sched.FlushNow()
}

// Close cancels any armed flush timer.
func (s *Session) Close() {
	s.sched.Stop()
}

func (s *Session) indexOf(taskID string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

func (s *Session) handleWriteResult(res autosave.WriteResult) {
	s.mu.Lock()
	if res.Err != nil {
		s.unsynced[res.TaskID] = struct{}{}
	} else {
		s.lastSaved = time.Now()
		delete(s.unsynced, res.TaskID)
	}
	s.mu.Unlock()

	if res.Err != nil {
		s.publish(map[string]any{"type": "save_failed", "task_id": res.TaskID})
	}
}

func (s *Session) handleSavingChange(saving bool) {
	if saving {
		s.publish(map[string]any{"type": "auto_saving"})
		return
	}
	s.publish(map[string]any{
		"type":     "tasks_saved",
		"saved_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Session) publish(event map[string]any) {
	if s.emit != nil {
		s.emit(event)
	}
}
