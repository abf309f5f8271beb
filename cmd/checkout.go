package cmd

import (
	"context"
	"fmt"

	"github.com/maxkimambo/vetflow/internal/dialog"
	"github.com/maxkimambo/vetflow/internal/domain"
	"github.com/maxkimambo/vetflow/internal/logger"
	"github.com/maxkimambo/vetflow/internal/progress"
	"github.com/maxkimambo/vetflow/internal/taskmanager"
	"github.com/maxkimambo/vetflow/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	checkoutDBPath        string
	appointmentID         string
	autoApprove           bool
	noPrint               bool
	checkoutInvoiceStatus string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check a patient out at the end of a visit",
	Long: `Runs the check-out workflow for an appointment:
1. Marks the appointment completed.
2. If the invoice is posted, asks whether to take payment and records it.
3. Offers to print the invoice.

Without --db the workflow runs against an in-memory store seeded with a demo visit.

Example:
vetflow checkout
vetflow checkout --db ./vetflow.db --appointment 3f1c... --auto-approve
`,
	PreRunE: validateCheckoutFlags,
	RunE:    runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)

	checkoutCmd.Flags().StringVar(&checkoutDBPath, "db", "", "SQLite database path (defaults to database.path from the config)")
	checkoutCmd.Flags().StringVar(&appointmentID, "appointment", "", "Appointment id (defaults to the first checked-in appointment)")
	checkoutCmd.Flags().BoolVar(&autoApprove, "auto-approve", false, "Answer every dialog with its default button")
	checkoutCmd.Flags().BoolVar(&noPrint, "no-print", false, "Do not offer to print the invoice")
	checkoutCmd.Flags().StringVar(&checkoutInvoiceStatus, "invoice-status", domain.StatusPosted, "Status of the demo invoice for the in-memory store")
}

func validateCheckoutFlags(cmd *cobra.Command, args []string) error {
	if checkoutDBPath == "" {
		checkoutDBPath = cfg.Database.Path
	}
	return validateInvoiceStatus(checkoutInvoiceStatus)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closeStore, err := openStore(ctx, checkoutDBPath)
	if err != nil {
		return err
	}
	defer closeStore()

	id := appointmentID
	if checkoutDBPath == "" {
		seeded, err := seedDemo(ctx, svc, checkoutInvoiceStatus)
		if err != nil {
			return err
		}
		id = seeded.Ref.ID
	}

	appointment, err := findAppointment(ctx, svc, id)
	if err != nil {
		return err
	}
	global, err := newSessionContext(ctx, svc, cfg, appointment)
	if err != nil {
		return err
	}

	tracker := progress.NewTracker(!quiet)
	w, err := workflows.NewCheckOutWorkflow(workflows.Deps{
		Store:         svc,
		Dialogs:       dialog.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), autoApprove || cfg.Dialogs.AutoApprove),
		Printer:       workflows.LogPrinter{Name: cfg.Print.Printer},
		Reporter:      dialog.NewErrorReporter(cmd.OutOrStdout()),
		Context:       global,
		Observer:      tracker,
		Print:         cfg.Print.Enabled && !noPrint,
		RetryAttempts: cfg.Retry.Attempts,
		RetryInterval: cfg.Retry.Interval,
	})
	if err != nil {
		return err
	}

	logger.User.Starting(fmt.Sprintf("Checking out %s", appointment.Name))
	if err := w.Start(ctx, nil); err != nil {
		return err
	}

	report := tracker.Report(w)
	logger.User.Raw(report.String())
	if w.State() != taskmanager.StateCompleted {
		return fmt.Errorf("check out of %s was %s", appointment.Name, w.State())
	}
	logger.User.Success("Check out finished.")
	return nil
}
