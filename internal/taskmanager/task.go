package taskmanager

import (
	"context"

	"github.com/maxkimambo/vetflow/internal/logger"
)

// EventType is the terminal outcome of a task run.
type EventType int

const (
	// EventCompleted indicates the task finished normally
	EventCompleted EventType = iota
	// EventCancelled indicates the task, or the user, aborted
	EventCancelled
	// EventSkipped indicates the user chose to skip the step
	EventSkipped
)

// String returns a string representation of the EventType
func (e EventType) String() string {
	switch e {
	case EventCompleted:
		return "COMPLETED"
	case EventCancelled:
		return "CANCELLED"
	case EventSkipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// Event is emitted once per task run to the task's listeners.
type Event struct {
	task Task
	typ  EventType
	err  error
}

// NewEvent creates an event.
func NewEvent(task Task, typ EventType) Event {
	return Event{task: task, typ: typ}
}

// Task returns the task that emitted the event.
func (e Event) Task() Task { return e.task }

// Type returns the outcome.
func (e Event) Type() EventType { return e.typ }

// Err returns the error behind a cancellation that has not been reported
// to the user yet. It is nil for every other event.
func (e Event) Err() error { return e.err }

// Listener receives task events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Task is one step of a workflow.
//
// Start begins execution. A task must eventually notify exactly one of
// completed, cancelled or skipped: synchronous tasks do so before Start
// returns, interactive ones from a dialog callback later on. An error
// returned by Start means the task failed to start and will not notify;
// the owning workflow treats it as a hard failure.
type Task interface {
	// Name returns a human-readable description of the step
	Name() string

	// Start runs the task against the workflow's context
	Start(ctx context.Context, tc TaskContext) error

	// AddListener registers a listener and returns a function removing it
	AddListener(listener Listener) (remove func())

	// IsRequired reports whether skipping the task aborts the workflow
	IsRequired() bool

	// SetRequired marks the task required or optional
	SetRequired(required bool)
}

type listenerEntry struct {
	id       int
	listener Listener
}

// BaseTask provides the listener and notification plumbing tasks share.
// Embedding types must call Bind with themselves so events name the right task.
type BaseTask struct {
	name      string
	required  bool
	self      Task
	listeners []listenerEntry
	nextID    int
	notified  bool
}

// NewBaseTask creates a new required base task
func NewBaseTask(name string) *BaseTask {
	return &BaseTask{
		name:     name,
		required: true,
	}
}

// Bind sets the task reported as the source of events.
func (t *BaseTask) Bind(self Task) {
	t.self = self
}

// Name returns the task name
func (t *BaseTask) Name() string {
	return t.name
}

// IsRequired reports whether the task is required
func (t *BaseTask) IsRequired() bool {
	return t.required
}

// SetRequired marks the task required or optional
func (t *BaseTask) SetRequired(required bool) {
	t.required = required
}

// AddListener registers a listener
func (t *BaseTask) AddListener(listener Listener) func() {
	t.nextID++
	id := t.nextID
	t.listeners = append(t.listeners, listenerEntry{id: id, listener: listener})
	return func() {
		for i, entry := range t.listeners {
			if entry.id == id {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// Begin marks the start of a run, allowing one more terminal notification.
func (t *BaseTask) Begin() {
	t.notified = false
	logger.ForTask(t.name).Debug("task started")
}

// NotifyCompleted notifies listeners that the task completed
func (t *BaseTask) NotifyCompleted() {
	t.notify(Event{typ: EventCompleted})
}

// NotifyCancelled notifies listeners that the task was cancelled
func (t *BaseTask) NotifyCancelled() {
	t.notify(Event{typ: EventCancelled})
}

// NotifySkipped notifies listeners that the task was skipped
func (t *BaseTask) NotifySkipped() {
	t.notify(Event{typ: EventSkipped})
}

// Fail cancels the task because of err. The nearest enclosing workflow
// reports err before propagating the cancellation.
func (t *BaseTask) Fail(err error) {
	t.notify(Event{typ: EventCancelled, err: err})
}

func (t *BaseTask) notify(event Event) {
	entry := logger.ForTask(t.name).WithField("event", event.typ.String())
	if t.notified {
		entry.Warn("dropping duplicate task notification")
		return
	}
	t.notified = true
	event.task = t.self
	if event.err != nil {
		entry = entry.WithField("error", event.err.Error())
	}
	entry.Debug("task finished")

	// listeners may remove themselves while being notified
	listeners := make([]listenerEntry, len(t.listeners))
	copy(listeners, t.listeners)
	for _, l := range listeners {
		l.listener.OnEvent(event)
	}
}
