// Package textutil measures and fits text to terminal columns.
package textutil

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width returns the number of terminal columns s occupies, ignoring ANSI
// escape codes.
func Width(s string) int {
	return lipgloss.Width(s)
}

// Truncate cuts s to at most maxWidth columns, ending in Ellipsis when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	avail := maxWidth - runewidth.StringWidth(Ellipsis)
	if avail < 0 {
		return Ellipsis
	}

	out := make([]rune, 0, len(s))
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > avail {
			break
		}
		out = append(out, r)
		w += rw
	}
	return string(out) + Ellipsis
}

// PadRight pads s with spaces to width columns, truncating when wider.
func PadRight(s string, width int) string {
	w := Width(s)
	if w > width {
		return Truncate(s, width)
	}
	return s + runewidth.FillRight("", width-w)
}

// PadLeft right-aligns s in width columns, truncating when wider.
func PadLeft(s string, width int) string {
	w := Width(s)
	if w > width {
		return Truncate(s, width)
	}
	return runewidth.FillLeft("", width-w) + s
}
