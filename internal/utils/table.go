package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TableFormatter helps create formatted tables for CLI output
type TableFormatter struct {
	headers []string
	rows    [][]string
	widths  []int
	// Plain drops the box-drawing borders, for output that is not a terminal
	Plain bool
}

// NewTableFormatter creates a new table formatter with headers
func NewTableFormatter(headers []string) *TableFormatter {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &TableFormatter{
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
	}
}

// AddRow adds a row to the table. Rows with the wrong number of cells are ignored.
func (t *TableFormatter) AddRow(row ...string) {
	if len(row) != len(t.headers) {
		return
	}
	t.rows = append(t.rows, row)
	for i, cell := range row {
		if n := utf8.RuneCountInString(cell); n > t.widths[i] {
			t.widths[i] = n
		}
	}
}

// Len returns the number of rows added so far
func (t *TableFormatter) Len() int {
	return len(t.rows)
}

// String returns the formatted table
func (t *TableFormatter) String() string {
	var sb strings.Builder

	if t.Plain {
		t.writeRow(&sb, t.headers, "", "  ", "")
		for _, row := range t.rows {
			t.writeRow(&sb, row, "", "  ", "")
		}
		return sb.String()
	}

	t.writeBorder(&sb, "┌", "┬", "┐")
	t.writeRow(&sb, t.headers, "│ ", " │ ", " │")
	t.writeBorder(&sb, "├", "┼", "┤")
	for _, row := range t.rows {
		t.writeRow(&sb, row, "│ ", " │ ", " │")
	}
	t.writeBorder(&sb, "└", "┴", "┘")

	return sb.String()
}

func (t *TableFormatter) writeRow(sb *strings.Builder, cells []string, left, middle, right string) {
	sb.WriteString(left)
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString(middle)
		}
		pad := t.widths[i] - utf8.RuneCountInString(cell)
		if i == len(cells)-1 && right == "" {
			pad = 0
		}
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", pad))
	}
	sb.WriteString(right)
	sb.WriteString("\n")
}

func (t *TableFormatter) writeBorder(sb *strings.Builder, left, middle, right string) {
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

// Truncate shortens s to at most max runes, marking the cut with "..."
func Truncate(s string, max int) string {
	if max <= 3 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return fmt.Sprintf("%s...", string(runes[:max-3]))
}
