package taskmanager

import (
	"context"

	"github.com/maxkimambo/vetflow/internal/dialog"
)

// stubTask records that it ran and finishes with a fixed outcome.
type stubTask struct {
	*BaseTask
	outcome  EventType
	startErr error
	panicMsg string
	runs     *[]string
}

func newStub(name string, runs *[]string) *stubTask {
	t := &stubTask{BaseTask: NewBaseTask(name), outcome: EventCompleted, runs: runs}
	t.Bind(t)
	return t
}

func (t *stubTask) skips() *stubTask {
	t.outcome = EventSkipped
	return t
}

func (t *stubTask) cancels() *stubTask {
	t.outcome = EventCancelled
	return t
}

func (t *stubTask) optional() *stubTask {
	t.SetRequired(false)
	return t
}

func (t *stubTask) failsToStart(err error) *stubTask {
	t.startErr = err
	return t
}

func (t *stubTask) panics(msg string) *stubTask {
	t.panicMsg = msg
	return t
}

func (t *stubTask) Start(_ context.Context, _ TaskContext) error {
	t.Begin()
	*t.runs = append(*t.runs, t.Name())
	if t.panicMsg != "" {
		panic(t.panicMsg)
	}
	if t.startErr != nil {
		return t.startErr
	}
	switch t.outcome {
	case EventSkipped:
		t.NotifySkipped()
	case EventCancelled:
		t.NotifyCancelled()
	default:
		t.NotifyCompleted()
	}
	return nil
}

// eventLog collects events.
type eventLog struct {
	events []Event
}

func (l *eventLog) OnEvent(event Event) {
	l.events = append(l.events, event)
}

func (l *eventLog) types() []EventType {
	types := make([]EventType, len(l.events))
	for i, e := range l.events {
		types[i] = e.Type()
	}
	return types
}

func (l *eventLog) names() []string {
	names := make([]string, len(l.events))
	for i, e := range l.events {
		names[i] = e.Task().Name()
	}
	return names
}

// run starts w with a fresh context and returns the events it emitted.
func run(w *Workflow) (*eventLog, error) {
	log := &eventLog{}
	w.AddListener(log)
	err := w.Start(context.Background(), nil)
	return log, err
}

func newCollector() *dialog.ErrorCollector {
	return &dialog.ErrorCollector{}
}
