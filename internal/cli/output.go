package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// colorEnabled tracks whether color output is enabled.
// It starts from terminal detection and is overridden by configuration.
var colorEnabled = IsTerminal(os.Stdout)

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string { return paint(colorYellow, s) }

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// Bold returns s in bold if colors are enabled.
func Bold(s string) string { return paint(colorBold, s) }

// Star returns the favorite marker for list views: a yellow star for
// favorites, a blank of the same width otherwise.
func Star(favorite bool) string {
	if favorite {
		return Yellow("*")
	}
	return " "
}

// YesNo renders a boolean setting.
func YesNo(b bool) string {
	if b {
		return Green("yes")
	}
	return Gray("no")
}

// DefaultMaxNameWidth is the default maximum visible width for name columns.
const DefaultMaxNameWidth = 30

// Table formats columnar output with automatic column width calculation.
type Table struct {
	header    []string
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{maxWidths: make(map[int]int)}
}

// SetHeader sets the header row, rendered in gray above the rows.
func (t *Table) SetHeader(cols ...string) {
	t.header = cols
	t.track(cols)
}

// SetMaxWidth sets the maximum visible width for a column.
// Content exceeding the limit is truncated with an ellipsis ("...").
func (t *Table) SetMaxWidth(col, maxWidth int) {
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	t.track(cols)
	t.rows = append(t.rows, cols)
}

// Len returns the number of rows, not counting the header.
func (t *Table) Len() int {
	return len(t.rows)
}

// track widens column widths to fit cols, honoring max widths.
func (t *Table) track(cols []string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		width := visibleWidth(col)
		if maxW, ok := t.maxWidths[i]; ok && width > maxW {
			width = maxW
		}
		if width > t.colWidths[i] {
			t.colWidths[i] = width
		}
	}
}

// Render writes the table to w with columns separated by two spaces.
func (t *Table) Render(w io.Writer) {
	if len(t.header) > 0 {
		header := make([]string, len(t.header))
		for i, col := range t.header {
			header[i] = Gray(col)
		}
		t.renderRow(w, header)
	}
	for _, row := range t.rows {
		t.renderRow(w, row)
	}
}

func (t *Table) renderRow(w io.Writer, row []string) {
	parts := make([]string, 0, len(row))
	for i, col := range row {
		if maxW, ok := t.maxWidths[i]; ok {
			col = Truncate(col, maxW)
		}
		if i < len(row)-1 {
			col += strings.Repeat(" ", t.colWidths[i]-visibleWidth(col))
		}
		parts = append(parts, col)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// Truncate returns s truncated to maxWidth visible characters. If s exceeds
// maxWidth, it is cut and "..." is appended (counted within the limit).
// ANSI escape codes are preserved up to the truncation point with a reset
// appended. Below 4 columns there is no room for the ellipsis and s is
// hard-cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "..."
	if maxWidth < len(ellipsis)+1 {
		cut, _ := cutVisible(s, maxWidth)
		return cut
	}

	cut, hasAnsi := cutVisible(s, maxWidth-len(ellipsis))
	cut += ellipsis
	if hasAnsi {
		cut += colorReset
	}
	return cut
}

// cutVisible returns the prefix of s holding n visible characters, keeping
// any escape sequences inside it, and whether it saw an escape sequence.
func cutVisible(s string, n int) (string, bool) {
	var b strings.Builder
	visible := 0
	inEscape := false
	hasAnsi := false

	for _, r := range s {
		switch {
		case r == '\033':
			inEscape, hasAnsi = true, true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case visible >= n:
			return b.String(), hasAnsi
		default:
			visible++
		}
		b.WriteRune(r)
	}
	return b.String(), hasAnsi
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false

	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			width++
		}
	}

	return width
}
