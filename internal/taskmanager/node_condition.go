package taskmanager

import (
	"context"
	"fmt"
	"math"
	"slices"
)

// NodeConditionTask evaluates whether a node of a context object equals,
// or does not equal, any of a set of values. It evaluates to false when the
// object is missing from the context.
type NodeConditionTask[T comparable] struct {
	*EvalTask[bool]
	target Selector
	node   string
	equals bool
	values []T
}

// NewNodeConditionTask creates the condition. With equals false the
// condition holds when the node matches none of the values. Whole float64
// node values, which is how stored JSON numbers load, match integer values.
func NewNodeConditionTask[T comparable](target Selector, node string, equals bool, values ...T) *NodeConditionTask[T] {
	op := "in"
	if !equals {
		op = "not in"
	}
	t := &NodeConditionTask[T]{
		EvalTask: NewEvalTask[bool](fmt.Sprintf("%s.%s %s %v", target, node, op, values)),
		target:   target,
		node:     node,
		equals:   equals,
		values:   values,
	}
	t.Bind(t)
	return t
}

func (t *NodeConditionTask[T]) Start(_ context.Context, tc TaskContext) error {
	t.Begin()
	t.SetValue(t.evaluate(tc))
	t.NotifyCompleted()
	return nil
}

func (t *NodeConditionTask[T]) evaluate(tc TaskContext) bool {
	obj := t.target.Lookup(tc)
	if obj == nil {
		return false
	}
	value, ok := nodeValue[T](obj.Get(t.node))
	matched := ok && slices.Contains(t.values, value)
	return matched == t.equals
}

// nodeValue converts a node value to T. Numbers decoded from JSON arrive as
// float64 and are converted to integer types when they have no fraction.
func nodeValue[T comparable](v any) (T, bool) {
	if value, ok := v.(T); ok {
		return value, true
	}
	var zero T
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return zero, false
	}
	var converted any
	switch any(zero).(type) {
	case int:
		converted = int(f)
	case int32:
		converted = int32(f)
	case int64:
		converted = int64(f)
	case uint:
		converted = uint(f)
	case uint64:
		converted = uint64(f)
	default:
		return zero, false
	}
	return converted.(T), true
}
