package api

import "f1dash/internal/jsonutil"

// DriverWinRecord is one row of the top-drivers-by-wins endpoint.
type DriverWinRecord struct {
	ID           int    `json:"id"`
	FullName     string `json:"full_name"`
	Nationality  string `json:"nationality"`
	NumberOfWins int    `json:"number_of_wins"`
}

// ConstructorStanding is one row of the constructor standings endpoint.
type ConstructorStanding struct {
	ID              int     `json:"id,omitempty"`
	ConstructorName string  `json:"constructor_name"`
	TotalPoints     float64 `json:"total_points"`
}

// Record is a loosely typed resource row as served by the CRUD endpoints.
type Record map[string]any

// ID returns the record's id in display form, or "" when absent.
func (r Record) ID() string {
	return jsonutil.ToString(r["id"])
}

// Get returns the display form of a field.
func (r Record) Get(field string) string {
	return jsonutil.ToString(r[field])
}
