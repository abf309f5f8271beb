package dialog

import (
	"fmt"
	"io"

	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/logger"
)

// ErrorReporter surfaces workflow errors to the user as error boxes.
type ErrorReporter struct {
	out   io.Writer
	width int
}

// NewErrorReporter writes error boxes to out.
func NewErrorReporter(out io.Writer) *ErrorReporter {
	return &ErrorReporter{out: out, width: terminalWidth(out) - 8}
}

// ReportError renders err and logs its summary.
func (r *ErrorReporter) ReportError(err error) {
	title, lines := wferrors.Lines(err)
	d := New(KindError, title, "")
	d.Lines = lines
	fmt.Fprintln(r.out, Render(d, r.width))
	logger.Op.WithFields(map[string]interface{}{
		"code": wferrors.GetErrorCode(err),
	}).Error(wferrors.DisplayErrorSummary(err))
}

// ErrorCollector records reported errors.
type ErrorCollector struct {
	Errors []error
}

func (c *ErrorCollector) ReportError(err error) {
	c.Errors = append(c.Errors, err)
}
