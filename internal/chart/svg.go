package chart

import (
	"html"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Plot margins in pixels: left, right, top, bottom.
const (
	marginLeft   = 150
	marginRight  = 30
	marginTop    = 50
	marginBottom = 50
	svgTicks     = 5

	svgFontSize  = 9.0
	svgTitleSize = 11.0
)

var (
	svgTextColor = drawing.ColorFromHex("333333")
	svgAxisColor = drawing.ColorFromHex("888888")
)

type anchor int

const (
	anchorStart anchor = iota
	anchorMiddle
	anchorEnd
)

// RenderSVG writes the chart as an inline SVG element of the given width.
// A nil chart writes nothing; an empty chart writes titles and bare axes.
func RenderSVG(w io.Writer, c *BarChart, width int) error {
	if c == nil {
		return nil
	}
	height := c.Height
	if height <= 0 {
		height = DefaultHeight
	}
	r, err := gochart.SVG(width, height)
	if err != nil {
		return err
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return err
	}
	r.SetFont(font)

	plotW := max(width-marginLeft-marginRight, 1)
	plotH := max(height-marginTop-marginBottom, 1)
	x0, y0 := marginLeft, marginTop+plotH

	svgText(r, c.Title, svgTitleSize, width/2, marginTop/2, anchorMiddle)

	r.SetStrokeColor(svgAxisColor)
	r.SetStrokeWidth(1)
	r.MoveTo(x0, marginTop)
	r.LineTo(x0, y0)
	r.LineTo(x0+plotW, y0)
	r.Stroke()

	svgText(r, c.XTitle, svgFontSize, x0+plotW/2, height-8, anchorMiddle)
	if c.YTitle != "" {
		r.SetFontColor(svgTextColor)
		r.SetFontSize(svgFontSize)
		yw := r.MeasureText(c.YTitle).Width()
		r.SetTextRotation(-math.Pi / 2)
		r.Text(html.EscapeString(c.YTitle), 16, y0-plotH/2+yw/2)
		r.ClearTextRotation()
	}

	if !c.Empty() {
		upper, step := axis(c.Max(), svgTicks)
		for v := 0.0; v <= upper+step/2; v += step {
			x := x0 + int(math.Round(v/upper*float64(plotW)))
			r.SetStrokeColor(svgAxisColor)
			r.SetStrokeWidth(1)
			r.MoveTo(x, y0)
			r.LineTo(x, y0+4)
			r.Stroke()
			svgText(r, formatValue(v), svgFontSize, x, y0+16, anchorMiddle)
		}

		fill := drawing.ColorFromHex(strings.TrimPrefix(c.Color, "#"))
		band := float64(plotH) / float64(len(c.Values))
		for i, v := range c.Values {
			// Category i counts up from the bottom of the axis.
			top := float64(y0) - float64(i+1)*band
			if v > 0 {
				barW := int(math.Round(v / upper * float64(plotW)))
				by, bh := int(math.Round(top+band*0.1)), int(math.Round(band*0.8))
				r.SetFillColor(fill)
				r.MoveTo(x0, by)
				r.LineTo(x0+barW, by)
				r.LineTo(x0+barW, by+bh)
				r.LineTo(x0, by+bh)
				r.Close()
				r.Fill()
			}
			svgText(r, c.Labels[i], svgFontSize, x0-6, int(math.Round(top+band/2)), anchorEnd)
		}
	}

	return r.Save(w)
}

// svgText draws body with its baseline centred on y and x placed per a.
func svgText(r gochart.Renderer, body string, size float64, x, y int, a anchor) {
	if body == "" {
		return
	}
	r.SetFontColor(svgTextColor)
	r.SetFontSize(size)
	box := r.MeasureText(body)
	switch a {
	case anchorMiddle:
		x -= box.Width() / 2
	case anchorEnd:
		x -= box.Width()
	}
	r.Text(html.EscapeString(body), x, y+box.Height()/2)
}
