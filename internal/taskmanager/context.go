package taskmanager

import (
	"github.com/maxkimambo/vetflow/internal/practice"
)

// TaskContext is the context a workflow runs against. On top of the
// well-known practice slots it carries an arbitrary key/value map that
// tasks use to hand results to later steps.
type TaskContext interface {
	practice.Context

	// SetValue stores a value locally. A nil value removes the key.
	SetValue(key string, value any)
	// Value looks the key up locally, then in the parent chain.
	Value(key string) (any, bool)
	// Parent returns the enclosing task context, or nil for a root.
	Parent() TaskContext
}

type taskContext struct {
	*practice.DelegatingContext
	values map[string]any
	parent TaskContext
}

// NewTaskContext creates a root task context. Object reads that miss fall
// back to parent, typically the session's global context; parent may be nil.
func NewTaskContext(parent practice.Context) TaskContext {
	return &taskContext{
		DelegatingContext: practice.NewDelegatingContext(practice.NewLocalContext(nil), parent),
		values:            make(map[string]any),
	}
}

// NewChildTaskContext creates a context whose object and value reads fall
// back to parent. Writes never reach the parent.
func NewChildTaskContext(parent TaskContext) TaskContext {
	var fallback practice.Context
	if parent != nil {
		fallback = parent
	}
	return &taskContext{
		DelegatingContext: practice.NewDelegatingContext(practice.NewLocalContext(nil), fallback),
		values:            make(map[string]any),
		parent:            parent,
	}
}

func (c *taskContext) SetValue(key string, value any) {
	if value == nil {
		delete(c.values, key)
		return
	}
	c.values[key] = value
}

func (c *taskContext) Value(key string) (any, bool) {
	if v, ok := c.values[key]; ok {
		return v, true
	}
	if c.parent != nil {
		return c.parent.Value(key)
	}
	return nil, false
}

func (c *taskContext) Parent() TaskContext {
	return c.parent
}
