package dialog

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialog_CloseRunsCallbacksOnce(t *testing.T) {
	d := NewConfirmation("Pay", "Pay invoice?", true)
	var got []Button
	d.OnClose(func(b Button) { got = append(got, b) })

	assert.True(t, d.Close(Yes))
	assert.False(t, d.Close(No))

	assert.Equal(t, []Button{Yes}, got)
	result, closed := d.Result()
	assert.True(t, closed)
	assert.Equal(t, Yes, result)
}

func TestNewConfirmation_Buttons(t *testing.T) {
	assert.Equal(t, []Button{Yes, No}, NewConfirmation("t", "m", false).Buttons)
	d := NewConfirmation("t", "m", true)
	assert.Equal(t, []Button{Yes, No, Cancel}, d.Buttons)
	assert.Equal(t, Yes, d.Default)
}

func TestTerminal_Answers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Button
	}{
		{"first letter", "n\n", No},
		{"full label any case", "CANCEL\n", Cancel},
		{"empty selects default", "\n", Yes},
		{"retry after garbage", "maybe\ny\n", Yes},
		{"no trailing newline", "n", No},
		{"eof falls back to cancel", "", Cancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			term := NewTerminal(strings.NewReader(tt.input), &out, false)
			d := NewConfirmation("Pay", "Pay invoice?", true)

			term.Show(d)

			result, closed := d.Result()
			require.True(t, closed)
			assert.Equal(t, tt.expected, result)
			assert.Contains(t, out.String(), "Pay invoice?")
			assert.Contains(t, out.String(), "[Y]es*/[N]o/[C]ancel")
		})
	}
}

func TestTerminal_AutoApprove(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("n\n"), &out, true)
	d := New(KindQuestion, "Print", "Print invoice?", OK, Cancel)

	term.Show(d)

	result, _ := d.Result()
	assert.Equal(t, OK, result)
}

func TestRecorder_HoldsDialogOpen(t *testing.T) {
	r := NewRecorder()
	d := NewConfirmation("Pay", "Pay invoice?", false)
	closedWith := Button("")
	d.OnClose(func(b Button) { closedWith = b })

	r.Show(d)
	assert.Same(t, d, r.Current())
	assert.Equal(t, Button(""), closedWith)

	assert.Error(t, r.Close(Cancel), "no cancel button")
	require.NoError(t, r.Close(No))
	assert.Equal(t, No, closedWith)
	assert.Nil(t, r.Current())
	assert.Error(t, r.Close(OK))
}

func TestScript_ClosesInOrder(t *testing.T) {
	s := NewScript(No)
	first := NewConfirmation("one", "", false)
	second := New(KindInfo, "two", "", OK, Cancel)

	s.Show(first)
	s.Show(second)

	r1, _ := first.Result()
	r2, _ := second.Result()
	assert.Equal(t, No, r1)
	assert.Equal(t, OK, r2, "falls back to the default once the script is exhausted")
	assert.Equal(t, []string{"one", "two"}, s.Shown())
}

func TestRender_WrapsLongLines(t *testing.T) {
	d := New(KindInfo, "Title", strings.Repeat("word ", 40), OK)
	out := Render(d, 40)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(stripANSI(line))), 42)
	}
	assert.Contains(t, out, "[OK]")
}

func TestErrorReporter(t *testing.T) {
	var out bytes.Buffer
	r := NewErrorReporter(&out)

	r.ReportError(wferrors.NewRequiredTaskSkippedError("Check-out", "Update status"))

	assert.Contains(t, out.String(), "Error [REQUIRED_TASK-002]")
	assert.Contains(t, out.String(), "Task 'Update status' is required and cannot be skipped")
}

func TestErrorCollector(t *testing.T) {
	c := &ErrorCollector{}
	c.ReportError(stderrors.New("boom"))
	assert.Len(t, c.Errors, 1)
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape && r == 'm':
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
