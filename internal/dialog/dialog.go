// Package dialog models the interactive pauses of a workflow. A task shows
// a Dialog through a Manager and returns; the workflow resumes when the
// dialog is closed and its callback runs.
package dialog

import "strings"

// Button identifies a dialog button.
type Button string

const (
	OK     Button = "ok"
	Cancel Button = "cancel"
	Yes    Button = "yes"
	No     Button = "no"
	Skip   Button = "skip"
	Retry  Button = "retry"
)

// Label returns the text shown on the button.
func (b Button) Label() string {
	switch b {
	case OK:
		return "OK"
	case Cancel:
		return "Cancel"
	case Yes:
		return "Yes"
	case No:
		return "No"
	case Skip:
		return "Skip"
	case Retry:
		return "Retry"
	default:
		return strings.ToUpper(string(b))
	}
}

// Kind selects how a dialog is styled.
type Kind int

const (
	KindInfo Kind = iota
	KindQuestion
	KindWarning
	KindError
)

// Dialog is a modal prompt with a set of buttons.
type Dialog struct {
	Kind    Kind
	Title   string
	Message string
	Lines   []string
	Buttons []Button
	// Default is chosen on empty input and under auto-approve.
	Default Button

	onClose []func(Button)
	closed  bool
	result  Button
}

// New creates a dialog. The first button is the default.
func New(kind Kind, title, message string, buttons ...Button) *Dialog {
	d := &Dialog{
		Kind:    kind,
		Title:   title,
		Message: message,
		Buttons: buttons,
	}
	if len(buttons) > 0 {
		d.Default = buttons[0]
	}
	return d
}

// NewConfirmation creates a Yes/No question, with Cancel when cancel is set.
func NewConfirmation(title, message string, cancel bool) *Dialog {
	buttons := []Button{Yes, No}
	if cancel {
		buttons = append(buttons, Cancel)
	}
	return New(KindQuestion, title, message, buttons...)
}

// AddLine appends a body line.
func (d *Dialog) AddLine(line string) *Dialog {
	d.Lines = append(d.Lines, line)
	return d
}

// OnClose registers a callback invoked with the button that closed the dialog.
func (d *Dialog) OnClose(fn func(Button)) {
	d.onClose = append(d.onClose, fn)
}

// HasButton reports whether the dialog offers b.
func (d *Dialog) HasButton(b Button) bool {
	for _, button := range d.Buttons {
		if button == b {
			return true
		}
	}
	return false
}

// Close closes the dialog with b and runs the callbacks. Only the first
// close has any effect; it returns false for later ones.
func (d *Dialog) Close(b Button) bool {
	if d.closed {
		return false
	}
	d.closed = true
	d.result = b
	for _, fn := range d.onClose {
		fn(b)
	}
	return true
}

// Closed reports whether the dialog has been closed.
func (d *Dialog) Closed() bool {
	return d.closed
}

// Result returns the button that closed the dialog.
func (d *Dialog) Result() (Button, bool) {
	return d.result, d.closed
}

// Manager displays dialogs. Show must not assume the dialog is closed on
// return: an interactive manager may close it later.
type Manager interface {
	Show(d *Dialog)
}

// ManagerFunc adapts a function to a Manager.
type ManagerFunc func(d *Dialog)

func (f ManagerFunc) Show(d *Dialog) { f(d) }
