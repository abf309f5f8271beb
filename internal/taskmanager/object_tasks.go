package taskmanager

import (
	"context"
	"fmt"
	"maps"

	"github.com/maxkimambo/vetflow/internal/domain"
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/store"
)

// UpdateIMObjectTask sets node values on a context object and, when given
// an object service, saves it. The values are applied to a copy that
// replaces the context object only once saved, so a failed save leaves the
// context as it was.
type UpdateIMObjectTask struct {
	*BaseTask
	target Selector
	nodes  map[string]any
	svc    store.ObjectService
}

// NewUpdateIMObjectTask creates the task. A nil svc leaves the object unsaved.
func NewUpdateIMObjectTask(target Selector, nodes map[string]any, svc store.ObjectService) *UpdateIMObjectTask {
	t := &UpdateIMObjectTask{
		BaseTask: NewBaseTask(fmt.Sprintf("update %s", target)),
		target:   target,
		nodes:    maps.Clone(nodes),
		svc:      svc,
	}
	t.Bind(t)
	return t
}

// NewUpdateStatusTask updates the status node of a context object.
func NewUpdateStatusTask(target Selector, status string, svc store.ObjectService) *UpdateIMObjectTask {
	t := NewUpdateIMObjectTask(target, map[string]any{domain.NodeStatus: status}, svc)
	t.name = fmt.Sprintf("set %s status to %s", target, status)
	return t
}

func (t *UpdateIMObjectTask) Start(ctx context.Context, tc TaskContext) error {
	t.Begin()
	obj := t.target.Lookup(tc)
	if obj == nil {
		return wferrors.NewMissingContextObjectError(t.Name(), t.target.String())
	}
	updated := obj.Clone()
	for node, value := range t.nodes {
		updated.Set(node, value)
	}
	if t.svc != nil {
		if err := t.svc.Save(ctx, updated); err != nil {
			return err
		}
	}
	t.target.Store(tc, obj, updated)
	t.NotifyCompleted()
	return nil
}

// InitFunc populates a newly created object from the context.
type InitFunc func(tc TaskContext, obj *domain.Object) error

// CreateIMObjectTask creates an object, saves it when given an object
// service, and stores it in the context.
type CreateIMObjectTask struct {
	*BaseTask
	archetype string
	target    Selector
	nodes     map[string]any
	init      InitFunc
	svc       store.ObjectService
}

// NewCreateIMObjectTask creates the task. The new object lands in the
// context where target points.
func NewCreateIMObjectTask(archetype string, target Selector, nodes map[string]any, svc store.ObjectService) *CreateIMObjectTask {
	t := &CreateIMObjectTask{
		BaseTask:  NewBaseTask(fmt.Sprintf("create %s", archetype)),
		archetype: archetype,
		target:    target,
		nodes:     maps.Clone(nodes),
		svc:       svc,
	}
	t.Bind(t)
	return t
}

// WithInit sets a function run on the new object before it is saved.
func (t *CreateIMObjectTask) WithInit(fn InitFunc) *CreateIMObjectTask {
	t.init = fn
	return t
}

func (t *CreateIMObjectTask) Start(ctx context.Context, tc TaskContext) error {
	t.Begin()
	obj := domain.New(t.archetype, "")
	for node, value := range t.nodes {
		obj.Set(node, value)
	}
	if t.init != nil {
		if err := t.init(tc, obj); err != nil {
			return err
		}
	}
	if t.svc != nil {
		if err := t.svc.Save(ctx, obj); err != nil {
			return err
		}
	}
	t.target.Store(tc, nil, obj)
	t.NotifyCompleted()
	return nil
}
