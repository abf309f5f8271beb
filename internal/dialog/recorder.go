package dialog

import "fmt"

// Recorder is a Manager that keeps dialogs open until the caller closes
// them. It lets tests stop a workflow mid-flight, inspect the pending
// dialog and resume it.
type Recorder struct {
	shown []*Dialog
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Show(d *Dialog) {
	r.shown = append(r.shown, d)
}

// Shown returns every dialog shown so far.
func (r *Recorder) Shown() []*Dialog {
	return r.shown
}

// Current returns the most recent dialog that is still open, or nil.
func (r *Recorder) Current() *Dialog {
	for i := len(r.shown) - 1; i >= 0; i-- {
		if !r.shown[i].Closed() {
			return r.shown[i]
		}
	}
	return nil
}

// Close closes the current dialog with b.
func (r *Recorder) Close(b Button) error {
	d := r.Current()
	if d == nil {
		return fmt.Errorf("no open dialog to close with %s", b.Label())
	}
	if !d.HasButton(b) {
		return fmt.Errorf("dialog %q has no %s button", d.Title, b.Label())
	}
	d.Close(b)
	return nil
}

// Script is a Manager that closes each dialog immediately with the next
// scripted button. Once the script runs out dialogs close with their default.
type Script struct {
	answers []Button
	shown   []*Dialog
}

// NewScript creates a scripted manager.
func NewScript(answers ...Button) *Script {
	return &Script{answers: answers}
}

func (s *Script) Show(d *Dialog) {
	s.shown = append(s.shown, d)
	b := d.Default
	if len(s.answers) > 0 {
		b = s.answers[0]
		s.answers = s.answers[1:]
	}
	d.Close(b)
}

// Shown returns the titles of the dialogs shown so far.
func (s *Script) Shown() []string {
	titles := make([]string, len(s.shown))
	for i, d := range s.shown {
		titles[i] = d.Title
	}
	return titles
}
