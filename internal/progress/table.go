package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders rows as a boxed table for CLI output. Column widths are
// measured in terminal cells so names with emoji or accents stay aligned.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table with headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{headers: headers, widths: widths}
}

// AddRow adds a row. Missing cells are left blank and extra cells dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	for i, cell := range row {
		t.widths[i] = max(t.widths[i], lipgloss.Width(cell))
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) String() string {
	var sb strings.Builder
	t.writeBorder(&sb, "┌", "┬", "┐")
	t.writeRow(&sb, t.headers)
	t.writeBorder(&sb, "├", "┼", "┤")
	for _, row := range t.rows {
		t.writeRow(&sb, row)
	}
	t.writeBorder(&sb, "└", "┴", "┘")
	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("│")
	for i, cell := range cells {
		pad := t.widths[i] - lipgloss.Width(cell)
		fmt.Fprintf(sb, " %s%s │", cell, strings.Repeat(" ", pad))
	}
	sb.WriteString("\n")
}

func (t *Table) writeBorder(sb *strings.Builder, left, middle, right string) {
	sb.WriteString(left)
	for i, w := range t.widths {
		sb.WriteString(strings.Repeat("─", w+2))
		if i < len(t.widths)-1 {
			sb.WriteString(middle)
		}
	}
	sb.WriteString(right)
	sb.WriteString("\n")
}
