package cellbuf

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Render turns the buffer into a styled string, one line per row.
//
// Adjacent cells sharing a StyleKey are emitted as one run with a single
// Style.Render call. Keys missing from styles render unstyled. An empty
// buffer renders as "".
func (b *Buffer) Render(styles map[StyleKey]lipgloss.Style) string {
	if b.W == 0 || b.H == 0 {
		return ""
	}
	lines := make([]string, b.H)
	run := make([]rune, 0, b.W)
	for y, row := range b.Cells {
		var sb strings.Builder
		key := row[0].Style
		flush := func() {
			if s, ok := styles[key]; ok {
				sb.WriteString(s.Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
			run = run[:0]
		}
		for _, c := range row {
			if c.Style != key {
				flush()
				key = c.Style
			}
			run = append(run, c.Ch)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// String renders the buffer without styles. Tests compare against it.
func (b *Buffer) String() string {
	return b.Render(nil)
}
