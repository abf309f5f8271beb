package taskmanager

import (
	"context"
	"fmt"

	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/logger"
	"github.com/maxkimambo/vetflow/internal/practice"
)

// State is the lifecycle state of a workflow run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateSkipped
)

// String returns a string representation of the State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateCompleted:
		return "COMPLETED"
	case StateCancelled:
		return "CANCELLED"
	case StateSkipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// Workflow runs an ordered list of tasks one after the other. It is a Task
// itself, so workflows nest.
//
// Each child is started only after the previous one has notified. A child
// that completes advances the workflow. A cancelled child cancels it. A
// skipped child cancels it with an error when the child is required, skips
// it when breakOnSkip is set and is otherwise ignored.
type Workflow struct {
	*BaseTask

	tasks          []Task
	breakOnSkip    bool
	isolateContext bool
	reporter       ErrorReporter
	parentContext  practice.Context
	observers      []Listener

	state     State
	queue     []Task
	current   Task
	detach    func()
	cancelled bool
	ctx       context.Context
	tc        TaskContext
}

// NewWorkflow creates an empty workflow. Use WorkflowBuilder for validation.
func NewWorkflow(name string) *Workflow {
	w := &Workflow{
		BaseTask: NewBaseTask(name),
		reporter: LogReporter(),
	}
	w.Bind(w)
	return w
}

// NewTasks groups tasks into a nested sub-sequence. Mark it optional with
// SetRequired(false) to let the whole group be skipped as a unit.
func NewTasks(name string, tasks ...Task) *Workflow {
	w := NewWorkflow(name)
	for _, task := range tasks {
		w.AddTask(task)
	}
	return w
}

// AddTask appends a task. Changes take effect on the next Start.
func (w *Workflow) AddTask(task Task) {
	w.tasks = append(w.tasks, task)
}

// Tasks returns the tasks in execution order.
func (w *Workflow) Tasks() []Task {
	return append([]Task(nil), w.tasks...)
}

// State returns the state of the current or last run.
func (w *Workflow) State() State {
	return w.state
}

// Context returns the task context of the current or last run.
func (w *Workflow) Context() TaskContext {
	return w.tc
}

// Start runs the workflow against tc. A nil tc creates a fresh root
// context reading through to the workflow's parent context.
func (w *Workflow) Start(ctx context.Context, tc TaskContext) error {
	if w.state == StateRunning {
		return fmt.Errorf("workflow %q is already running", w.Name())
	}
	if ctx == nil {
		ctx = context.Background()
	}
	switch {
	case tc == nil:
		tc = NewTaskContext(w.parentContext)
	case w.isolateContext:
		tc = NewChildTaskContext(tc)
	}

	w.Begin()
	w.cancelled = false
	w.queue = append([]Task(nil), w.tasks...)
	w.ctx = withObservers(ctx, w.observers)
	w.tc = tc
	w.state = StateRunning
	w.next()
	return nil
}

// Cancel asks the workflow to stop. It takes effect the next time the
// workflow would start a task; a task already running is not interrupted
// beyond being asked to cancel too when it is a workflow.
func (w *Workflow) Cancel() {
	if w.state != StateRunning {
		return
	}
	w.cancelled = true
	if c, ok := w.current.(interface{ Cancel() }); ok {
		c.Cancel()
	}
}

func (w *Workflow) next() {
	if w.cancelled || w.ctx.Err() != nil {
		w.finish(StateCancelled)
		return
	}
	if len(w.queue) == 0 {
		w.finish(StateCompleted)
		return
	}

	task := w.queue[0]
	w.queue = w.queue[1:]
	w.current = task
	w.detach = task.AddListener(ListenerFunc(w.onEvent))

	if err := startTask(w.ctx, task, w.tc); err != nil {
		if w.current != task || w.state != StateRunning {
			logger.ForTask(task.Name()).WithError(err).Warn("task returned an error after notifying")
			return
		}
		w.release()
		w.cancelled = true
		w.reporter.ReportError(wferrors.NewTaskFailedError(w.Name(), task.Name(), err))
		w.finish(StateCancelled)
	}
}

// startTask starts task, turning a panic into an error so the workflow
// cancels and reports it like any other start failure.
func startTask(ctx context.Context, task Task, tc TaskContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %q panicked: %v", task.Name(), r)
		}
	}()
	return task.Start(ctx, tc)
}

func (w *Workflow) onEvent(event Event) {
	task := w.current
	w.release()
	if task == nil {
		return
	}
	for _, o := range observersFrom(w.ctx) {
		o.OnEvent(event)
	}

	switch event.Type() {
	case EventSkipped:
		switch {
		case task.IsRequired():
			w.cancelled = true
			w.reporter.ReportError(wferrors.NewRequiredTaskSkippedError(w.Name(), task.Name()))
			w.finish(StateCancelled)
		case w.breakOnSkip:
			w.finish(StateSkipped)
		default:
			w.next()
		}
	case EventCancelled:
		if err := event.Err(); err != nil {
			w.reporter.ReportError(err)
		}
		w.cancelled = true
		w.finish(StateCancelled)
	case EventCompleted:
		w.next()
	}
}

func (w *Workflow) release() {
	if w.detach != nil {
		w.detach()
		w.detach = nil
	}
	w.current = nil
}

func (w *Workflow) finish(state State) {
	w.state = state
	w.queue = nil
	logger.ForTask(w.Name()).WithField("state", state.String()).Debug("workflow finished")

	switch state {
	case StateCompleted:
		w.NotifyCompleted()
	case StateSkipped:
		w.NotifySkipped()
	default:
		w.NotifyCancelled()
	}
}

type observersKey struct{}

// withObservers returns a context carrying the given observers after any
// already present, so nested workflows report to every enclosing observer.
func withObservers(ctx context.Context, observers []Listener) context.Context {
	if len(observers) == 0 {
		return ctx
	}
	all := append(observersFrom(ctx), observers...)
	return context.WithValue(ctx, observersKey{}, all)
}

func observersFrom(ctx context.Context) []Listener {
	if ctx == nil {
		return nil
	}
	observers, _ := ctx.Value(observersKey{}).([]Listener)
	return append([]Listener(nil), observers...)
}
