package autosave

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordedWrite struct {
	taskID string
	fields map[string]any
}

// recordingWriter captures every write and can fail specific tasks.
type recordingWriter struct {
	mu      sync.Mutex
	writes  []recordedWrite
	failFor map[string]error
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{failFor: make(map[string]error)}
}

func (w *recordingWriter) UpdateFields(taskID string, fields map[string]any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	w.writes = append(w.writes, recordedWrite{taskID: taskID, fields: copied})
	return w.failFor[taskID]
}

func (w *recordingWriter) snapshot() []recordedWrite {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]recordedWrite, len(w.writes))
	copy(out, w.writes)
	return out
}

func TestScheduler_RepeatedEditsCoalesceIntoOneFlush(t *testing.T) {
	ledger := NewLedger()
	writer := newRecordingWriter()
	sched := NewScheduler(ledger, writer, SchedulerOptions{QuietPeriod: 50 * time.Millisecond})
	defer sched.Stop()

	// Edits arriving faster than the quiet period keep sliding the flush
	for i := 0; i < 5; i++ {
		ledger.Merge("t-1", map[string]any{"notes": i})
		sched.NotifyEdit()
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(300 * time.Millisecond)

	writes := writer.snapshot()
	require.Len(t, writes, 1)
	require.Equal(t, "t-1", writes[0].taskID)
	require.Equal(t, map[string]any{"notes": 4}, writes[0].fields)
}

func TestScheduler_OneWritePerTask(t *testing.T) {
	ledger := NewLedger()
	writer := newRecordingWriter()
	sched := NewScheduler(ledger, writer, SchedulerOptions{QuietPeriod: time.Hour})
	defer sched.Stop()

	ledger.Merge("t-1", map[string]any{"task_description": "a"})
	sched.NotifyEdit()
	ledger.Merge("t-2", map[string]any{"priority": "High"})
	sched.NotifyEdit()

	sched.FlushNow()

	writes := writer.snapshot()
	require.Len(t, writes, 2)
	byTask := map[string]map[string]any{}
	for _, w := range writes {
		byTask[w.taskID] = w.fields
	}
	require.Equal(t, map[string]any{"task_description": "a"}, byTask["t-1"])
	require.Equal(t, map[string]any{"priority": "High"}, byTask["t-2"])
}

func TestScheduler_FailureDoesNotBlockOtherTasks(t *testing.T) {
	ledger := NewLedger()
	writer := newRecordingWriter()
	writer.failFor["t-bad"] = errors.New("boom")

	var mu sync.Mutex
	results := map[string]error{}
	sched := NewScheduler(ledger, writer, SchedulerOptions{
		QuietPeriod: time.Hour,
		OnResult: func(res WriteResult) {
			mu.Lock()
			results[res.TaskID] = res.Err
			mu.Unlock()
		},
	})
	defer sched.Stop()

	ledger.Merge("t-bad", map[string]any{"notes": "x"})
	ledger.Merge("t-good", map[string]any{"notes": "y"})
	sched.NotifyEdit()
	sched.FlushNow()

	require.Len(t, writer.snapshot(), 2)
	require.Error(t, results["t-bad"])
	require.NoError(t, results["t-good"])

	// Failed writes are not re-queued
	require.True(t, ledger.IsEmpty())
	sched.FlushNow()
	require.Len(t, writer.snapshot(), 2)
}

func TestScheduler_SavingIndicatorSpansCycle(t *testing.T) {
	ledger := NewLedger()
	writer := newRecordingWriter()

	var mu sync.Mutex
	var transitions []bool
	sched := NewScheduler(ledger, writer, SchedulerOptions{
		QuietPeriod: time.Hour,
		OnSavingChange: func(saving bool) {
			mu.Lock()
			transitions = append(transitions, saving)
			mu.Unlock()
		},
	})
	defer sched.Stop()

	require.False(t, sched.Saving())

	ledger.Merge("t-1", map[string]any{"notes": "x"})
	sched.FlushNow()

	require.False(t, sched.Saving())
	require.Equal(t, []bool{true, false}, transitions)
}

func TestScheduler_FlushNowWithEmptyLedgerIsNoop(t *testing.T) {
	ledger := NewLedger()
	writer := newRecordingWriter()
	sched := NewScheduler(ledger, writer, SchedulerOptions{QuietPeriod: time.Hour})
	defer sched.Stop()

	sched.FlushNow()
	require.Empty(t, writer.snapshot())
}

func TestScheduler_EditsDuringFlushStartNewBatch(t *testing.T) {
	ledger := NewLedger()
	writer := newRecordingWriter()
	sched := NewScheduler(ledger, writer, SchedulerOptions{QuietPeriod: 40 * time.Millisecond})
	defer sched.Stop()

	ledger.Merge("t-1", map[string]any{"notes": "first"})
	sched.NotifyEdit()
	sched.FlushNow()

	ledger.Merge("t-1", map[string]any{"notes": "second"})
	sched.NotifyEdit()
	time.Sleep(200 * time.Millisecond)

	writes := writer.snapshot()
	require.Len(t, writes, 2)
	require.Equal(t, map[string]any{"notes": "first"}, writes[0].fields)
	require.Equal(t, map[string]any{"notes": "second"}, writes[1].fields)
}
