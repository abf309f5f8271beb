package cmd

import (
	"context"
	"errors"

	"github.com/maxkimambo/vetflow/internal/domain"
	"github.com/maxkimambo/vetflow/internal/logger"
	"github.com/spf13/cobra"
)

var (
	seedDBPath        string
	seedInvoiceStatus string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo visit in the object store",
	Long: `Saves a customer, their patient, a checked-in appointment and the visit's
invoice so that a check-out can be run against the store.

Example:
vetflow seed --db ./vetflow.db
vetflow seed --db ./vetflow.db --invoice-status IN_PROGRESS
`,
	PreRunE: validateSeedFlags,
	RunE:    runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedDBPath, "db", "", "SQLite database path (defaults to database.path from the config)")
	seedCmd.Flags().StringVar(&seedInvoiceStatus, "invoice-status", domain.StatusPosted, "Status of the seeded invoice (POSTED or IN_PROGRESS)")
}

func validateSeedFlags(cmd *cobra.Command, args []string) error {
	if seedDBPath == "" {
		seedDBPath = cfg.Database.Path
	}
	if seedDBPath == "" {
		return errors.New("--db is required when no database path is configured")
	}
	return validateInvoiceStatus(seedInvoiceStatus)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closeStore, err := openStore(ctx, seedDBPath)
	if err != nil {
		return err
	}
	defer closeStore()

	appointment, err := seedDemo(ctx, svc, seedInvoiceStatus)
	if err != nil {
		return err
	}
	logger.User.Successf("Seeded appointment %s", appointment.Ref.ID)
	return nil
}

func validateInvoiceStatus(status string) error {
	switch status {
	case domain.StatusPosted, domain.StatusInProgress:
		return nil
	default:
		return errors.New("--invoice-status must be POSTED or IN_PROGRESS, got " + status)
	}
}
