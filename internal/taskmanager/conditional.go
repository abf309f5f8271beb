package taskmanager

import (
	"context"

	wferrors "github.com/maxkimambo/vetflow/internal/errors"
)

// Condition is a task evaluating to a boolean.
type Condition interface {
	Task
	Value() bool
}

// ConditionalTask runs a condition, then the body when it evaluated to true
// or the optional else task when it evaluated to false. The outcome of the
// branch that ran becomes the outcome of the conditional; with no branch to
// run it completes.
type ConditionalTask struct {
	*BaseTask
	condition Condition
	body      Task
	otherwise Task

	ctx    context.Context
	tc     TaskContext
	detach func()
}

// NewConditionalTask creates a conditional with no else branch.
func NewConditionalTask(condition Condition, body Task) *ConditionalTask {
	return NewConditionalElseTask(condition, body, nil)
}

// NewConditionalElseTask creates a conditional with an else branch.
func NewConditionalElseTask(condition Condition, body, otherwise Task) *ConditionalTask {
	t := &ConditionalTask{
		BaseTask:  NewBaseTask("if " + condition.Name()),
		condition: condition,
		body:      body,
		otherwise: otherwise,
	}
	t.Bind(t)
	return t
}

// Cancel forwards a cancellation request to the branch being run.
func (t *ConditionalTask) Cancel() {
	for _, task := range []Task{t.body, t.otherwise} {
		if c, ok := task.(interface{ Cancel() }); ok {
			c.Cancel()
		}
	}
}

func (t *ConditionalTask) Start(ctx context.Context, tc TaskContext) error {
	t.Begin()
	t.ctx, t.tc = ctx, tc
	t.detach = t.condition.AddListener(ListenerFunc(t.onCondition))
	if err := t.condition.Start(ctx, tc); err != nil {
		t.release()
		return err
	}
	return nil
}

func (t *ConditionalTask) onCondition(event Event) {
	t.release()
	switch event.Type() {
	case EventCompleted:
		branch := t.otherwise
		if t.condition.Value() {
			branch = t.body
		}
		if branch == nil {
			t.NotifyCompleted()
			return
		}
		t.run(branch)
	case EventSkipped:
		t.NotifySkipped()
	case EventCancelled:
		t.forwardCancel(event)
	}
}

func (t *ConditionalTask) run(branch Task) {
	t.detach = branch.AddListener(ListenerFunc(t.onBranch))
	if err := branch.Start(t.ctx, t.tc); err != nil {
		t.release()
		t.Fail(wferrors.NewTaskFailedError(t.Name(), branch.Name(), err))
	}
}

func (t *ConditionalTask) onBranch(event Event) {
	t.release()
	switch event.Type() {
	case EventCompleted:
		t.NotifyCompleted()
	case EventSkipped:
		t.NotifySkipped()
	case EventCancelled:
		t.forwardCancel(event)
	}
}

func (t *ConditionalTask) forwardCancel(event Event) {
	if err := event.Err(); err != nil {
		t.Fail(err)
		return
	}
	t.NotifyCancelled()
}

func (t *ConditionalTask) release() {
	if t.detach != nil {
		t.detach()
		t.detach = nil
	}
}
