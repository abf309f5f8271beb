package taskmanager

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/maxkimambo/vetflow/internal/dialog"
	"github.com/maxkimambo/vetflow/internal/domain"
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/store"
)

// EditResult is how an edit session ended.
type EditResult int

const (
	EditSaved EditResult = iota
	EditCancelled
	EditSkipped
)

// Editor edits an object interactively and calls done once the user is
// finished. skippable is set when the user may skip the edit.
type Editor interface {
	Edit(obj *domain.Object, skippable bool, done func(EditResult))
}

// EditIMObjectTask edits a copy of a context object. Saving persists the
// copy and puts it in the context; cancelling leaves the context as it was.
type EditIMObjectTask struct {
	*BaseTask
	target Selector
	editor Editor
	svc    store.ObjectService
}

// NewEditIMObjectTask creates the task. A nil svc skips persistence.
func NewEditIMObjectTask(target Selector, editor Editor, svc store.ObjectService) *EditIMObjectTask {
	t := &EditIMObjectTask{
		BaseTask: NewBaseTask(fmt.Sprintf("edit %s", target)),
		target:   target,
		editor:   editor,
		svc:      svc,
	}
	t.Bind(t)
	return t
}

func (t *EditIMObjectTask) Start(ctx context.Context, tc TaskContext) error {
	t.Begin()
	original := t.target.Lookup(tc)
	if original == nil {
		return wferrors.NewMissingContextObjectError(t.Name(), t.target.String())
	}

	edited := original.Clone()
	t.editor.Edit(edited, !t.IsRequired(), func(result EditResult) {
		switch result {
		case EditSaved:
			if t.svc != nil {
				if err := t.svc.Save(ctx, edited); err != nil {
					t.Fail(err)
					return
				}
			}
			t.target.Store(tc, original, edited)
			t.NotifyCompleted()
		case EditSkipped:
			t.NotifySkipped()
		default:
			t.NotifyCancelled()
		}
	})
	return nil
}

// DialogEditor proposes a fixed set of node changes in a dialog. OK applies
// them, Cancel abandons the edit and Skip, when allowed, skips it.
type DialogEditor struct {
	dialogs dialog.Manager
	changes map[string]any
}

// NewDialogEditor creates an editor proposing changes.
func NewDialogEditor(dialogs dialog.Manager, changes map[string]any) *DialogEditor {
	return &DialogEditor{dialogs: dialogs, changes: maps.Clone(changes)}
}

func (e *DialogEditor) Edit(obj *domain.Object, skippable bool, done func(EditResult)) {
	buttons := []dialog.Button{dialog.OK, dialog.Cancel}
	if skippable {
		buttons = append(buttons, dialog.Skip)
	}
	d := dialog.New(dialog.KindQuestion, fmt.Sprintf("Edit %s", obj), "Apply these changes?", buttons...)
	nodes := make([]string, 0, len(e.changes))
	for node := range e.changes {
		nodes = append(nodes, node)
	}
	slices.Sort(nodes)
	for _, node := range nodes {
		d.AddLine(fmt.Sprintf("%s: %v -> %v", node, displayValue(obj.Get(node)), e.changes[node]))
	}
	d.OnClose(func(b dialog.Button) {
		switch b {
		case dialog.OK:
			for node, value := range e.changes {
				obj.Set(node, value)
			}
			done(EditSaved)
		case dialog.Skip:
			done(EditSkipped)
		default:
			done(EditCancelled)
		}
	})
	e.dialogs.Show(d)
}

func displayValue(v any) any {
	if v == nil {
		return "(none)"
	}
	return v
}
