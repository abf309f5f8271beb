package logger_test

import (
	"github.com/maxkimambo/vetflow/internal/logger"
)

func Example_unifiedLogger() {
	log := logger.GetLogger()

	log.Info("Starting check-out")
	log.Starting("Check-out for Fido")
	log.Success("Check-out for Fido")

	log.ForTask("Update appointment status").Debug("task started")

	log.WithFieldsMap(map[string]interface{}{
		"invoice": "act.customerAccountChargesInvoice:42",
		"status":  "POSTED",
	}).Info("Invoice loaded")
}
