package workflows

import (
	"context"
	"fmt"

	"github.com/maxkimambo/vetflow/internal/dialog"
	"github.com/maxkimambo/vetflow/internal/domain"
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/logger"
	"github.com/maxkimambo/vetflow/internal/taskmanager"
)

// Printer prints a document.
type Printer interface {
	Print(ctx context.Context, doc *domain.Object) error
}

// LogPrinter "prints" by writing to the user log.
type LogPrinter struct {
	Name string
}

func (p LogPrinter) Print(_ context.Context, doc *domain.Object) error {
	logger.User.Printf("Printed %s on %s", doc, p.Name)
	return nil
}

// PrintTask asks whether to print a context object and prints it on OK.
// Cancelling the dialog skips an optional print and cancels a required one.
type PrintTask struct {
	*taskmanager.BaseTask
	target  taskmanager.Selector
	dialogs dialog.Manager
	printer Printer
}

// NewPrintTask creates a required print task.
func NewPrintTask(target taskmanager.Selector, dialogs dialog.Manager, printer Printer) *PrintTask {
	t := &PrintTask{
		BaseTask: taskmanager.NewBaseTask(fmt.Sprintf("print %s", target)),
		target:   target,
		dialogs:  dialogs,
		printer:  printer,
	}
	t.Bind(t)
	return t
}

func (t *PrintTask) Start(ctx context.Context, tc taskmanager.TaskContext) error {
	t.Begin()
	doc := t.target.Lookup(tc)
	if doc == nil {
		return wferrors.NewMissingContextObjectError(t.Name(), t.target.String())
	}

	buttons := []dialog.Button{dialog.OK, dialog.Cancel}
	if !t.IsRequired() {
		buttons = append(buttons, dialog.Skip)
	}
	d := dialog.New(dialog.KindQuestion, fmt.Sprintf("Print %s", doc.Name), "Print this document now?", buttons...)
	d.OnClose(func(b dialog.Button) {
		switch b {
		case dialog.OK:
			if err := t.printer.Print(ctx, doc); err != nil {
				t.Fail(wferrors.NewPrintFailedError(doc.String(), err))
				return
			}
			t.NotifyCompleted()
		case dialog.Skip:
			t.NotifySkipped()
		default:
			if t.IsRequired() {
				t.NotifyCancelled()
			} else {
				t.NotifySkipped()
			}
		}
	})
	t.dialogs.Show(d)
	return nil
}
