package taskmanager

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/maxkimambo/vetflow/internal/domain"
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/logger"
	"github.com/maxkimambo/vetflow/internal/store"
)

const (
	defaultUpdateRetries  = 3
	defaultUpdateInterval = 50 * time.Millisecond
)

// RetryableUpdateIMObjectTask sets node values on a context object and
// saves it. When the save loses to a concurrent writer it re-fetches the
// latest version, applies the values again and retries, a bounded number
// of times. Other errors fail the task straight away. The context object is
// replaced by the saved copy only when a save succeeds.
type RetryableUpdateIMObjectTask struct {
	*BaseTask
	target   Selector
	nodes    map[string]any
	svc      store.ObjectService
	retries  uint64
	interval time.Duration
}

// NewRetryableUpdateIMObjectTask creates the task. A nil svc leaves the
// object unsaved, so there is nothing to retry.
func NewRetryableUpdateIMObjectTask(target Selector, nodes map[string]any, svc store.ObjectService) *RetryableUpdateIMObjectTask {
	t := &RetryableUpdateIMObjectTask{
		BaseTask: NewBaseTask(fmt.Sprintf("update %s", target)),
		target:   target,
		nodes:    maps.Clone(nodes),
		svc:      svc,
		retries:  defaultUpdateRetries,
		interval: defaultUpdateInterval,
	}
	t.Bind(t)
	return t
}

// WithRetries sets how many times a conflicting save is retried and the
// pause between attempts.
func (t *RetryableUpdateIMObjectTask) WithRetries(retries uint64, interval time.Duration) *RetryableUpdateIMObjectTask {
	t.retries = retries
	t.interval = interval
	return t
}

func (t *RetryableUpdateIMObjectTask) Start(ctx context.Context, tc TaskContext) error {
	t.Begin()
	original := t.target.Lookup(tc)
	if original == nil {
		return wferrors.NewMissingContextObjectError(t.Name(), t.target.String())
	}

	obj := original.Clone()
	t.apply(obj)
	if t.svc == nil {
		t.target.Store(tc, original, obj)
		t.NotifyCompleted()
		return nil
	}

	attempt := 0
	operation := func() error {
		attempt++
		if attempt > 1 {
			latest, err := t.svc.Get(ctx, original.Ref)
			if err != nil {
				return backoff.Permanent(err)
			}
			t.apply(latest)
			obj = latest
		}
		err := t.svc.Save(ctx, obj)
		if err != nil && !wferrors.IsConflict(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	// WithMaxRetries treats zero as unlimited
	var policy backoff.BackOff = &backoff.StopBackOff{}
	if t.retries > 0 {
		policy = backoff.WithMaxRetries(backoff.NewConstantBackOff(t.interval), t.retries)
	}
	policy = backoff.WithContext(policy, ctx)
	notify := func(err error, wait time.Duration) {
		logger.ForTask(t.Name()).WithFields(map[string]interface{}{
			"attempt": attempt,
			"wait":    wait.String(),
		}).Warn("save conflicted, reloading and retrying")
	}
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return err
	}

	t.target.Store(tc, original, obj)
	t.NotifyCompleted()
	return nil
}

func (t *RetryableUpdateIMObjectTask) apply(obj *domain.Object) {
	for node, value := range t.nodes {
		obj.Set(node, value)
	}
}
