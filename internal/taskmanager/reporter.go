package taskmanager

import (
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/logger"
)

// ErrorReporter surfaces hard errors that abort a workflow.
type ErrorReporter interface {
	ReportError(err error)
}

// ErrorReporterFunc adapts a function to an ErrorReporter.
type ErrorReporterFunc func(err error)

func (f ErrorReporterFunc) ReportError(err error) { f(err) }

type logReporter struct{}

func (logReporter) ReportError(err error) {
	logger.Op.WithFields(map[string]interface{}{
		"code": wferrors.GetErrorCode(err),
	}).Error(wferrors.DisplayErrorSummary(err))
}

// LogReporter returns the reporter used when none is configured. It writes
// a one-line summary to the operational log.
func LogReporter() ErrorReporter {
	return logReporter{}
}
