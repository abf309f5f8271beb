package dialog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	topLeft     = "╭"
	topRight    = "╮"
	bottomLeft  = "╰"
	bottomRight = "╯"
	horizontal  = "─"
	vertical    = "│"
)

var (
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func styleFor(kind Kind) (lipgloss.Style, string) {
	switch kind {
	case KindQuestion:
		return questionStyle, "?"
	case KindWarning:
		return warningStyle, "⚠"
	case KindError:
		return errorStyle, "✗"
	default:
		return infoStyle, "ℹ"
	}
}

// Render draws the dialog as a box of the given width.
func Render(d *Dialog, width int) string {
	style, prefix := styleFor(d.Kind)
	contentWidth := width - 6
	if contentWidth < 10 {
		contentWidth = 10
	}

	var body []string
	if d.Message != "" {
		body = append(body, d.Message)
	}
	body = append(body, d.Lines...)
	if len(d.Buttons) > 0 {
		labels := make([]string, len(d.Buttons))
		for i, b := range d.Buttons {
			labels[i] = "[" + b.Label() + "]"
		}
		body = append(body, "", strings.Join(labels, " "))
	}

	lines := []string{d.Title}
	for _, line := range body {
		if utf8.RuneCountInString(line) <= contentWidth {
			lines = append(lines, line)
		} else {
			lines = append(lines, wrapText(line, contentWidth)...)
		}
	}

	boxWidth := 6
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n+6 > boxWidth {
			boxWidth = n + 6
		}
	}

	var sb strings.Builder
	sb.WriteString(style.Render(topLeft+strings.Repeat(horizontal, boxWidth-2)+topRight) + "\n")

	title := lines[0]
	padding := max(boxWidth-utf8.RuneCountInString(title)-4-utf8.RuneCountInString(prefix), 0)
	sb.WriteString(fmt.Sprintf("%s %s %s%s %s\n",
		style.Render(vertical),
		style.Bold(true).Render(prefix),
		style.Bold(true).Render(title),
		strings.Repeat(" ", padding),
		style.Render(vertical)))

	for _, line := range lines[1:] {
		padding := max(boxWidth-utf8.RuneCountInString(line)-4, 0)
		sb.WriteString(fmt.Sprintf("%s   %s%s %s\n",
			style.Render(vertical),
			line,
			strings.Repeat(" ", padding),
			style.Render(vertical)))
	}

	sb.WriteString(style.Render(bottomLeft + strings.Repeat(horizontal, boxWidth-2) + bottomRight))
	return sb.String()
}

// terminalWidth returns the width available on w, or 80 if w isn't a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func wrapText(text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	currentWidth := utf8.RuneCountInString(current)
	for _, word := range words[1:] {
		w := utf8.RuneCountInString(word)
		if currentWidth+w+1 <= maxWidth {
			current += " " + word
			currentWidth += w + 1
		} else {
			lines = append(lines, current)
			current = word
			currentWidth = w
		}
	}
	return append(lines, current)
}
