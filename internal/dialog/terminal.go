package dialog

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/maxkimambo/vetflow/internal/logger"
)

// Terminal shows dialogs on a text terminal and reads the answer from in.
// Dialogs are closed before Show returns.
type Terminal struct {
	in          *bufio.Reader
	out         io.Writer
	autoApprove bool
	width       int
}

// NewTerminal creates a terminal manager. With autoApprove set every
// dialog is closed with its default button without reading input.
func NewTerminal(in io.Reader, out io.Writer, autoApprove bool) *Terminal {
	return &Terminal{
		in:          bufio.NewReader(in),
		out:         out,
		autoApprove: autoApprove,
		width:       terminalWidth(out) - 8,
	}
}

// Show renders the dialog and closes it with the chosen button.
func (t *Terminal) Show(d *Dialog) {
	fmt.Fprintln(t.out, Render(d, t.width))

	if len(d.Buttons) == 0 {
		d.Close(OK)
		return
	}
	if t.autoApprove {
		logger.Op.Debugf("auto-approving dialog %q with %s", d.Title, d.Default.Label())
		d.Close(d.Default)
		return
	}

	for {
		fmt.Fprintf(t.out, "%s: ", promptFor(d))
		input, err := t.in.ReadString('\n')
		if err != nil && (!stderrors.Is(err, io.EOF) || strings.TrimSpace(input) == "") {
			if !stderrors.Is(err, io.EOF) {
				logger.Op.Warnf("failed to read dialog answer: %v", err)
			}
			d.Close(fallbackButton(d))
			return
		}
		if b, ok := match(d, input); ok {
			d.Close(b)
			return
		}
		fmt.Fprintf(t.out, "Unrecognised answer %q\n", strings.TrimSpace(input))
	}
}

func promptFor(d *Dialog) string {
	options := make([]string, len(d.Buttons))
	for i, b := range d.Buttons {
		label := b.Label()
		options[i] = "[" + label[:1] + "]" + label[1:]
		if b == d.Default {
			options[i] += "*"
		}
	}
	return strings.Join(options, "/")
}

// match maps typed input to a button by label or first letter. Empty input
// selects the default.
func match(d *Dialog, input string) (Button, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return d.Default, d.Default != ""
	}
	for _, b := range d.Buttons {
		label := strings.ToLower(b.Label())
		if input == label || input == label[:1] {
			return b, true
		}
	}
	return "", false
}

// fallbackButton is used when no more input is available.
func fallbackButton(d *Dialog) Button {
	for _, b := range []Button{Cancel, No, Skip} {
		if d.HasButton(b) {
			return b
		}
	}
	return d.Default
}
