package taskmanager

import (
	"context"

	"github.com/maxkimambo/vetflow/internal/dialog"
)

// EvalTask is embedded by tasks that produce a value. The value is only
// meaningful once the task has completed.
type EvalTask[T any] struct {
	*BaseTask
	value T
	set   bool
}

// NewEvalTask creates the embeddable part of a value-producing task.
func NewEvalTask[T any](name string) *EvalTask[T] {
	return &EvalTask[T]{BaseTask: NewBaseTask(name)}
}

// Value returns the evaluated value, or the zero value before evaluation.
func (t *EvalTask[T]) Value() T {
	return t.value
}

// HasValue reports whether the value has been set since the last start.
func (t *EvalTask[T]) HasValue() bool {
	return t.set
}

// SetValue records the result.
func (t *EvalTask[T]) SetValue(value T) {
	t.value = value
	t.set = true
}

// Begin starts a run and clears the previous value.
func (t *EvalTask[T]) Begin() {
	var zero T
	t.value = zero
	t.set = false
	t.BaseTask.Begin()
}

// EvalFuncTask computes a value synchronously.
type EvalFuncTask[T any] struct {
	*EvalTask[T]
	fn func(ctx context.Context, tc TaskContext) (T, error)
}

// NewEvalFuncTask creates a task completing with the value fn returns.
func NewEvalFuncTask[T any](name string, fn func(ctx context.Context, tc TaskContext) (T, error)) *EvalFuncTask[T] {
	t := &EvalFuncTask[T]{EvalTask: NewEvalTask[T](name), fn: fn}
	t.Bind(t)
	return t
}

func (t *EvalFuncTask[T]) Start(ctx context.Context, tc TaskContext) error {
	t.Begin()
	value, err := t.fn(ctx, tc)
	if err != nil {
		return err
	}
	t.SetValue(value)
	t.NotifyCompleted()
	return nil
}

// NewConditionFunc creates a condition from a predicate on the context.
func NewConditionFunc(name string, fn func(tc TaskContext) bool) *EvalFuncTask[bool] {
	return NewEvalFuncTask(name, func(_ context.Context, tc TaskContext) (bool, error) {
		return fn(tc), nil
	})
}

// ConfirmationTask asks a yes/no question. Yes evaluates to true and No to
// false; both complete the task. Cancel, when offered, cancels it.
type ConfirmationTask struct {
	*EvalTask[bool]
	title   string
	message string
	cancel  bool
	dialogs dialog.Manager
}

// NewConfirmationTask creates a confirmation. cancel adds a Cancel button.
func NewConfirmationTask(title, message string, dialogs dialog.Manager, cancel bool) *ConfirmationTask {
	t := &ConfirmationTask{
		EvalTask: NewEvalTask[bool](title),
		title:    title,
		message:  message,
		cancel:   cancel,
		dialogs:  dialogs,
	}
	t.Bind(t)
	return t
}

func (t *ConfirmationTask) Start(_ context.Context, _ TaskContext) error {
	t.Begin()
	d := dialog.NewConfirmation(t.title, t.message, t.cancel)
	d.OnClose(func(b dialog.Button) {
		switch b {
		case dialog.Yes:
			t.SetValue(true)
			t.NotifyCompleted()
		case dialog.No:
			t.SetValue(false)
			t.NotifyCompleted()
		default:
			t.NotifyCancelled()
		}
	})
	t.dialogs.Show(d)
	return nil
}
