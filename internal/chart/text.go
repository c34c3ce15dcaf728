package chart

import (
	"math"
	"strconv"
	"strings"

	"f1dash/internal/textutil"

	"github.com/charmbracelet/lipgloss"
)

const (
	maxLabelWidth = 22
	minBarWidth   = 10
	barRune       = "█"
)

var (
	textTitleStyle = lipgloss.NewStyle().Bold(true)
	textAxisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderText draws the chart for a terminal of the given width. The first
// category is drawn on the bottom row. A nil chart renders as "".
func RenderText(c *BarChart, width int) string {
	if c == nil {
		return ""
	}

	labelW := textutil.Width(c.YTitle)
	valueW := 1
	for i, l := range c.Labels {
		labelW = max(labelW, min(textutil.Width(l), maxLabelWidth))
		valueW = max(valueW, len(formatValue(c.Values[i])))
	}
	barW := max(width-labelW-valueW-3, minBarWidth)

	var b strings.Builder
	b.WriteString(textTitleStyle.Render(c.Title) + "\n")
	b.WriteString(textAxisStyle.Render(textutil.PadRight(c.YTitle, labelW)) + "\n")

	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color))
	maxV := c.Max()
	for i := len(c.Labels) - 1; i >= 0; i-- {
		n := 0
		if maxV > 0 && c.Values[i] > 0 {
			n = int(math.Round(c.Values[i] / maxV * float64(barW)))
		}
		b.WriteString(textutil.PadRight(c.Labels[i], labelW))
		b.WriteString(textAxisStyle.Render(" │"))
		b.WriteString(bar.Render(strings.Repeat(barRune, n)))
		b.WriteString(" " + textutil.PadLeft(formatValue(c.Values[i]), valueW) + "\n")
	}

	b.WriteString(strings.Repeat(" ", labelW+1) + textAxisStyle.Render("└"+strings.Repeat("─", barW)) + "\n")
	b.WriteString(strings.Repeat(" ", labelW+2) + textAxisStyle.Render(c.XTitle))
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
