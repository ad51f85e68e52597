package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/todo/internal/model"
	"golang.org/x/term"
)

// ANSI escape codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	styleStrike = "\033[9m"
)

// colorEnabled tracks whether ANSI styling is emitted.
// It defaults to whether stdout is a terminal.
var colorEnabled = true

func init() {
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled overrides terminal detection.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsInputTerminal returns true if r is an interactive terminal.
func IsInputTerminal(r io.Reader) bool {
	if f, ok := r.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func style(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green returns s in green if colors are enabled.
func Green(s string) string { return style(colorGreen, s) }

// Red returns s in red if colors are enabled.
func Red(s string) string { return style(colorRed, s) }

// Yellow returns s in yellow if colors are enabled.
func Yellow(s string) string { return style(colorYellow, s) }

// Gray returns s in gray if colors are enabled.
func Gray(s string) string { return style(colorGray, s) }

// Strike returns s struck through if colors are enabled. Without styling
// the text is wrapped in tildes so completion stays visible.
func Strike(s string) string {
	if !colorEnabled {
		return "~" + s + "~"
	}
	return styleStrike + s + colorReset
}

// Checkbox renders a completion box.
func Checkbox(done bool) string {
	if done {
		return Green("[x]")
	}
	return "[ ]"
}

// PriorityBadge renders a priority as a colored tag, e.g. "[high]".
func PriorityBadge(p model.Priority) string {
	badge := fmt.Sprintf("[%s]", p)
	switch p {
	case model.PriorityHigh:
		return Red(badge)
	case model.PriorityMedium:
		return Yellow(badge)
	default:
		return Gray(badge)
	}
}

// DefaultMaxTextWidth is the default maximum visible width for task text.
const DefaultMaxTextWidth = 60

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// SetMaxWidth caps the visible width of a column. Longer cells are cut
// and end in "...".
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
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
	t.rows = append(t.rows, cols)
}

// Render writes the table to w with columns separated by two spaces.
// The last column is never padded.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		parts := make([]string, len(row))
		for i, col := range row {
			if maxW, ok := t.maxWidths[i]; ok {
				col = Truncate(col, maxW)
			}
			if i < len(t.colWidths)-1 {
				col += strings.Repeat(" ", t.colWidths[i]-visibleWidth(col))
			}
			parts[i] = col
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

// Truncate cuts s to at most maxWidth visible characters, ending in "..."
// when there is room for it. ANSI sequences are kept and a reset is
// appended if s contained any.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	ellipsis := "..."
	if maxWidth < len(ellipsis) {
		ellipsis = ""
	}
	limit := maxWidth - len(ellipsis)

	var b strings.Builder
	visible := 0
	inEscape := false
	hasANSI := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape, hasANSI = true, true
			b.WriteRune(r)
		case inEscape:
			b.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
		case visible < limit:
			b.WriteRune(r)
			visible++
		}
	}

	b.WriteString(ellipsis)
	if hasANSI {
		b.WriteString(colorReset)
	}
	return b.String()
}

// visibleWidth returns the number of runes in s outside ANSI sequences.
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
