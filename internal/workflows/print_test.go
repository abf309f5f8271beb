package workflows

import (
	"context"
	"testing"

	"github.com/maxkimambo/vetflow/internal/dialog"
	"github.com/maxkimambo/vetflow/internal/domain"
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/practice"
	"github.com/maxkimambo/vetflow/internal/taskmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startPrint(t *testing.T, task *PrintTask, tc taskmanager.TaskContext) (*[]taskmanager.EventType, error) {
	t.Helper()
	var events []taskmanager.EventType
	task.AddListener(taskmanager.ListenerFunc(func(e taskmanager.Event) {
		events = append(events, e.Type())
	}))
	return &events, task.Start(context.Background(), tc)
}

func TestPrintTask_RequiredCancel(t *testing.T) {
	tc := taskmanager.NewTaskContext(nil)
	tc.SetInvoice(domain.New(domain.InvoiceArchetype, "Invoice 1"))
	dialogs := dialog.NewRecorder()
	task := NewPrintTask(taskmanager.ByKey(practice.KeyInvoice), dialogs, &mockPrinter{})

	events, err := startPrint(t, task, tc)
	require.NoError(t, err)
	assert.False(t, dialogs.Current().HasButton(dialog.Skip), "a required print cannot be skipped")

	require.NoError(t, dialogs.Close(dialog.Cancel))
	assert.Equal(t, []taskmanager.EventType{taskmanager.EventCancelled}, *events)
}

func TestPrintTask_OptionalSkip(t *testing.T) {
	tc := taskmanager.NewTaskContext(nil)
	tc.SetInvoice(domain.New(domain.InvoiceArchetype, "Invoice 1"))
	task := NewPrintTask(taskmanager.ByKey(practice.KeyInvoice), dialog.NewScript(dialog.Skip), &mockPrinter{})
	task.SetRequired(false)

	events, err := startPrint(t, task, tc)

	require.NoError(t, err)
	assert.Equal(t, []taskmanager.EventType{taskmanager.EventSkipped}, *events)
}

func TestPrintTask_MissingDocument(t *testing.T) {
	task := NewPrintTask(taskmanager.ByKey(practice.KeyInvoice), dialog.NewScript(), &mockPrinter{})

	events, err := startPrint(t, task, taskmanager.NewTaskContext(nil))

	assert.ErrorIs(t, err, wferrors.ErrMissingContextObject)
	assert.Empty(t, *events)
}

func TestLogPrinter(t *testing.T) {
	doc := domain.New(domain.InvoiceArchetype, "Invoice 1")
	assert.NoError(t, LogPrinter{Name: "front desk"}.Print(context.Background(), doc))
}
