// Package chart turns fetched dashboard rows into horizontal bar charts.
//
// Rows are copied and sorted ascending by their metric before charting, so the
// caller's slice (and any grid rendered from it) keeps the API order. The
// first category sits at the bottom of the category axis in every renderer.
package chart

import (
	"cmp"
	"math"
	"slices"

	"f1dash/internal/api"
)

// Chart presets for the dashboard.
const (
	DriverWinsColor        = "#1976d2"
	ConstructorPointsColor = "#d32f2f"
	DefaultHeight          = 400
)

// BarChart is a horizontal bar chart: Labels on the category axis, Values on
// the numeric axis, index-aligned.
type BarChart struct {
	Title  string    `json:"title"`
	XTitle string    `json:"x_title"`
	YTitle string    `json:"y_title"`
	Color  string    `json:"color"`
	Height int       `json:"height"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// SortAscending copies data, stable-sorts the copy ascending by value and
// returns the parallel label and value slices. Ties keep input order.
func SortAscending[T any](data []T, label func(T) string, value func(T) float64) ([]string, []float64) {
	sorted := slices.Clone(data)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(value(a), value(b))
	})

	labels := make([]string, len(sorted))
	values := make([]float64, len(sorted))
	for i, row := range sorted {
		labels[i] = label(row)
		values[i] = value(row)
	}
	return labels, values
}

// DriverWins charts wins per driver. Nil input means "no data" and yields nil.
func DriverWins(data []api.DriverWinRecord) *BarChart {
	if data == nil {
		return nil
	}
	labels, values := SortAscending(data,
		func(d api.DriverWinRecord) string { return d.FullName },
		func(d api.DriverWinRecord) float64 { return float64(d.NumberOfWins) },
	)
	return &BarChart{
		Title:  "Top Drivers by Wins (All Time)",
		XTitle: "Number of Wins",
		YTitle: "Driver",
		Color:  DriverWinsColor,
		Height: DefaultHeight,
		Labels: labels,
		Values: values,
	}
}

// ConstructorPoints charts total points per constructor. Nil input yields nil.
func ConstructorPoints(data []api.ConstructorStanding) *BarChart {
	if data == nil {
		return nil
	}
	labels, values := SortAscending(data,
		func(s api.ConstructorStanding) string { return s.ConstructorName },
		func(s api.ConstructorStanding) float64 { return s.TotalPoints },
	)
	return &BarChart{
		Title:  "Constructor Standings (2024)",
		XTitle: "Total Points",
		YTitle: "Constructor",
		Color:  ConstructorPointsColor,
		Height: DefaultHeight,
		Labels: labels,
		Values: values,
	}
}

// Empty reports whether the chart has no bars. A nil chart is empty.
func (c *BarChart) Empty() bool {
	return c == nil || len(c.Values) == 0
}

// Max returns the largest value, or 0 for an empty chart.
func (c *BarChart) Max() float64 {
	if c.Empty() {
		return 0
	}
	return slices.Max(c.Values)
}

// axis returns the numeric axis upper bound and tick step for roughly n ticks,
// rounded to 1, 2 or 5 times a power of ten.
func axis(maxV float64, n int) (upper, step float64) {
	if maxV <= 0 || n <= 0 {
		return 1, 1
	}
	rough := maxV / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(rough)))
	switch r := rough / mag; {
	case r <= 1:
		step = mag
	case r <= 2:
		step = 2 * mag
	case r <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}
	return math.Ceil(maxV/step) * step, step
}
