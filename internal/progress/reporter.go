// Package progress tracks the task events of a workflow run and turns them
// into a report for the person at the desk.
package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/maxkimambo/vetflow/internal/logger"
	"github.com/maxkimambo/vetflow/internal/taskmanager"
)

// TaskRecord is the outcome of one task.
type TaskRecord struct {
	Name     string
	Outcome  taskmanager.EventType
	Duration time.Duration
	Err      error
}

// Report summarises a workflow run.
type Report struct {
	Workflow  string
	Outcome   taskmanager.State
	Completed int
	Cancelled int
	Skipped   int
	Elapsed   time.Duration
	Tasks     []TaskRecord
}

// Tracker is a task listener recording every event it sees. Register it
// as a workflow observer to follow nested workflows too.
type Tracker struct {
	now       func() time.Time
	startTime time.Time
	lastEvent time.Time
	records   []TaskRecord
	echo      bool
}

// NewTracker creates a tracker. With echo set each event is also written
// to the user log as it happens.
func NewTracker(echo bool) *Tracker {
	return newTracker(time.Now, echo)
}

func newTracker(now func() time.Time, echo bool) *Tracker {
	start := now()
	return &Tracker{now: now, startTime: start, lastEvent: start, echo: echo}
}

// OnEvent records a task event.
func (t *Tracker) OnEvent(event taskmanager.Event) {
	now := t.now()
	record := TaskRecord{
		Outcome:  event.Type(),
		Duration: now.Sub(t.lastEvent),
		Err:      event.Err(),
	}
	if task := event.Task(); task != nil {
		record.Name = task.Name()
	}
	t.lastEvent = now
	t.records = append(t.records, record)

	if !t.echo {
		return
	}
	switch record.Outcome {
	case taskmanager.EventCompleted:
		logger.User.Successf("%s (took %s)", record.Name, FormatDuration(record.Duration))
	case taskmanager.EventSkipped:
		logger.User.Skipped(record.Name)
	case taskmanager.EventCancelled:
		logger.User.Cancelled(record.Name)
	}
}

// Records returns the events recorded so far.
func (t *Tracker) Records() []TaskRecord {
	return append([]TaskRecord(nil), t.records...)
}

// Report builds the report for w, which should have finished.
func (t *Tracker) Report(w *taskmanager.Workflow) Report {
	r := Report{
		Workflow: w.Name(),
		Outcome:  w.State(),
		Elapsed:  t.lastEvent.Sub(t.startTime),
		Tasks:    t.Records(),
	}
	for _, rec := range r.Tasks {
		switch rec.Outcome {
		case taskmanager.EventCompleted:
			r.Completed++
		case taskmanager.EventCancelled:
			r.Cancelled++
		case taskmanager.EventSkipped:
			r.Skipped++
		}
	}
	return r
}

// String formats the report as a headline and a task table.
func (r Report) String() string {
	var sb strings.Builder

	total := len(r.Tasks)
	percentage := 0.0
	if total > 0 {
		percentage = float64(r.Completed) / float64(total) * 100
	}
	sb.WriteString(fmt.Sprintf("%s: %s | %d/%d tasks completed (%.1f%%)",
		r.Workflow, r.Outcome, r.Completed, total, percentage))
	if r.Skipped > 0 {
		sb.WriteString(fmt.Sprintf(", %d skipped", r.Skipped))
	}
	if r.Cancelled > 0 {
		sb.WriteString(fmt.Sprintf(", %d cancelled", r.Cancelled))
	}
	sb.WriteString(fmt.Sprintf(" | Elapsed: %s\n", FormatDuration(r.Elapsed)))

	if total == 0 {
		return sb.String()
	}
	table := NewTable("Task", "Outcome", "Took")
	for _, rec := range r.Tasks {
		outcome := rec.Outcome.String()
		if rec.Err != nil {
			outcome += " (error)"
		}
		table.AddRow(rec.Name, outcome, FormatDuration(rec.Duration))
	}
	sb.WriteString(table.String())
	return sb.String()
}

// FormatDuration formats a duration in a user-friendly way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}
