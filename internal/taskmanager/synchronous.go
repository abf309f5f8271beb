package taskmanager

import "context"

// TaskFunc is the body of a synchronous task.
type TaskFunc func(ctx context.Context, tc TaskContext) error

// SynchronousTask runs a function in-line and completes as soon as it
// returns. An error is returned from Start.
type SynchronousTask struct {
	*BaseTask
	fn TaskFunc
}

// NewSynchronousTask creates a required synchronous task.
func NewSynchronousTask(name string, fn TaskFunc) *SynchronousTask {
	t := &SynchronousTask{BaseTask: NewBaseTask(name), fn: fn}
	t.Bind(t)
	return t
}

func (t *SynchronousTask) Start(ctx context.Context, tc TaskContext) error {
	t.Begin()
	if err := t.fn(ctx, tc); err != nil {
		return err
	}
	t.NotifyCompleted()
	return nil
}
