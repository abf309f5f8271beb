// Package workflows assembles the task engine into the practice's
// everyday workflows.
package workflows

import (
	"fmt"
	"time"

	"github.com/maxkimambo/vetflow/internal/dialog"
	"github.com/maxkimambo/vetflow/internal/domain"
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/practice"
	"github.com/maxkimambo/vetflow/internal/store"
	"github.com/maxkimambo/vetflow/internal/taskmanager"
)

// Deps are the collaborators a workflow needs.
type Deps struct {
	Store    store.ObjectService
	Dialogs  dialog.Manager
	Printer  Printer
	Reporter taskmanager.ErrorReporter
	// Context is the session's global context the workflow reads through to.
	Context  practice.Context
	Observer taskmanager.Listener

	// Print adds the invoice print step
	Print         bool
	RetryAttempts uint64
	RetryInterval time.Duration
}

// NewCheckOutWorkflow builds the end-of-visit workflow: complete the
// appointment, take payment when the invoice is posted and offer to print
// the invoice.
func NewCheckOutWorkflow(deps Deps) (*taskmanager.Workflow, error) {
	isPosted := taskmanager.NewNodeConditionTask(taskmanager.ByKey(practice.KeyInvoice),
		domain.NodeStatus, true, domain.StatusPosted)

	b := taskmanager.NewWorkflowBuilder("check out").
		Context(deps.Context).
		AddTasks(
			taskmanager.NewUpdateStatusTask(taskmanager.ByKey(practice.KeyAppointment), domain.StatusCompleted, deps.Store),
			taskmanager.NewConditionalTask(isPosted, NewPayInvoiceWorkflow(deps)),
		)
	if deps.Print {
		printInvoice := NewPrintTask(taskmanager.ByKey(practice.KeyInvoice), deps.Dialogs, deps.Printer)
		printInvoice.SetRequired(false)
		b.AddTask(printInvoice)
	}
	b.Reporter(deps.Reporter)
	if deps.Observer != nil {
		b.Observer(deps.Observer)
	}
	return b.Build()
}

// NewPayInvoiceWorkflow asks whether to pay the context invoice and, when
// confirmed, records a payment and marks the invoice paid.
func NewPayInvoiceWorkflow(deps Deps) *taskmanager.Workflow {
	confirm := taskmanager.NewConfirmationTask("Pay invoice?", "Take payment for the posted invoice now?", deps.Dialogs, true)
	confirmed := taskmanager.NewConditionFunc("payment confirmed", func(taskmanager.TaskContext) bool {
		return confirm.Value()
	})

	record := taskmanager.NewWorkflowBuilder("record payment").
		Reporter(deps.Reporter).
		AddTasks(
			taskmanager.NewCreateIMObjectTask(domain.PaymentArchetype, taskmanager.ByArchetype(domain.PaymentArchetype),
				map[string]any{domain.NodeStatus: domain.StatusPosted}, deps.Store).
				WithInit(initPayment),
			taskmanager.NewRetryableUpdateIMObjectTask(taskmanager.ByKey(practice.KeyInvoice),
				map[string]any{domain.NodePaid: true}, deps.Store).
				WithRetries(deps.RetryAttempts, deps.RetryInterval),
		).
		MustBuild()

	return taskmanager.NewWorkflowBuilder("pay invoice").
		Reporter(deps.Reporter).
		AddTasks(confirm, taskmanager.NewConditionalTask(confirmed, record)).
		MustBuild()
}

func initPayment(tc taskmanager.TaskContext, payment *domain.Object) error {
	invoice := tc.Invoice()
	if invoice == nil {
		return wferrors.NewMissingContextObjectError("record payment", practice.KeyInvoice.String())
	}
	payment.Name = fmt.Sprintf("Payment for %s", invoice.Name)
	payment.Set(domain.NodeInvoice, invoice.Ref.ID)
	payment.Set(domain.NodeAmount, invoice.Get(domain.NodeAmount))
	if customer := tc.Customer(); customer != nil {
		payment.Set(domain.NodeCustomer, customer.Ref.ID)
	}
	return nil
}
