package ui

import (
	"f1dash/internal/textutil"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxColumnWidth = 28
	gridChrome     = 3 // header row, its border and slack for the viewport
)

// newGrid builds a table sized to its content. Unfocused grids render
// without a selected row.
func newGrid(headers []string, rows [][]string, height int, focused bool) table.Model {
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		w := textutil.Width(h)
		for _, r := range rows {
			if i < len(r) {
				w = max(w, textutil.Width(r[i]))
			}
		}
		cols[i] = table.Column{Title: h, Width: min(w, maxColumnWidth)}
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithHeight(height),
		table.WithFocused(focused),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		BorderBottom(true).
		Bold(true)
	if focused {
		s.Selected = Styles.Selected
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	t.SetStyles(s)
	return t
}
