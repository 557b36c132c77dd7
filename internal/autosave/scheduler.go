package autosave

import (
	"log"
	"sync"
	"time"
)

// DefaultQuietPeriod is how long edits must stop arriving before a flush fires.
const DefaultQuietPeriod = 500 * time.Millisecond

// TaskWriter issues one persistence write for a task's merged field updates.
type TaskWriter interface {
	UpdateFields(taskID string, fields map[string]any) error
}

// WriteResult reports the outcome of a single task's write within a flush cycle.
type WriteResult struct {
	TaskID string
	Fields map[string]any
	Err    error
}

// SchedulerOptions controls construction of a Scheduler.
type SchedulerOptions struct {
	// QuietPeriod is the debounce interval; DefaultQuietPeriod when zero.
	QuietPeriod time.Duration

	// OnResult, if set, is called once per task write with its outcome.
	// It may be called from multiple goroutines concurrently.
	OnResult func(WriteResult)

	// OnSavingChange, if set, is called with true when a flush cycle begins
	// and false once every write of the outstanding cycles has completed.
	OnSavingChange func(saving bool)
}

// Scheduler drives the debounced flush: every edit re-arms a quiet-period
// timer, and when the timer fires with no intervening edit the ledger is
// drained and one independent write is issued per pending task. Failed writes
// are reported but never re-queued; the edit is gone from the server's point
// of view until the user touches the field again.
type Scheduler struct {
	ledger *Ledger
	writer TaskWriter
	quiet  time.Duration

	onResult       func(WriteResult)
	onSavingChange func(saving bool)

	mu     sync.Mutex
	timer  *time.Timer
	cycles int
}

// NewScheduler constructs a Scheduler around a ledger and writer.
func NewScheduler(ledger *Ledger, writer TaskWriter, opts SchedulerOptions) *Scheduler {
	quiet := opts.QuietPeriod
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Scheduler{
		ledger:         ledger,
		writer:         writer,
		quiet:          quiet,
		onResult:       opts.OnResult,
		onSavingChange: opts.OnSavingChange,
	}
}

// NotifyEdit cancels and re-arms the quiet-period timer. Call it after every
// ledger merge; when edits keep arriving faster than the quiet period the
// flush keeps sliding, bounding write amplification to one write per task per
// quiet period of inactivity.
func (s *Scheduler) NotifyEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger.IsEmpty() {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, s.flush)
}

// FlushNow drains and writes immediately, bypassing the timer. It returns
// after every write of the batch has completed, which makes it the entry
// point for tests and explicit "save now" actions.
func (s *Scheduler) FlushNow() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.flush()
}

// Stop cancels any armed timer. Pending ledger entries are left in place.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Saving reports whether any flush cycle has writes outstanding.
func (s *Scheduler) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycles > 0
}

// flush drains the ledger and issues one write per task. Writes fan out in
// parallel and are independent: a failure on one task never blocks or rolls
// back another. New edits arriving meanwhile start a fresh batch and timer
// cycle without waiting on these writes.
func (s *Scheduler) flush() {
	batch := s.ledger.Drain()
	if len(batch) == 0 {
		return
	}

	s.beginCycle()
	defer s.endCycle()

	var wg sync.WaitGroup
	for taskID, fields := range batch {
		wg.Add(1)
		go func(taskID string, fields map[string]any) {
			defer wg.Done()
			err := s.writer.UpdateFields(taskID, fields)
			if err != nil {
				log.Printf("autosave: write for task %s failed: %v", taskID, err)
			}
			if s.onResult != nil {
				s.onResult(WriteResult{TaskID: taskID, Fields: fields, Err: err})
			}
		}(taskID, fields)
	}
	wg.Wait()
}

func (s *Scheduler) beginCycle() {
	s.mu.Lock()
	s.cycles++
	first := s.cycles == 1
	s.mu.Unlock()

	if first && s.onSavingChange != nil {
		s.onSavingChange(true)
	}
}

func (s *Scheduler) endCycle() {
	s.mu.Lock()
	s.cycles--
	last := s.cycles == 0
	s.mu.Unlock()

	if last && s.onSavingChange != nil {
		s.onSavingChange(false)
	}
}
