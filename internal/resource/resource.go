// Package resource declares the list and create screens of the admin
// dashboard: which API resource each screen reads, the columns its grid
// shows and the inputs its create form collects.
package resource

import (
	"math"
	"strconv"
	"strings"

	"f1dash/internal/api"
	"f1dash/internal/jsonutil"
)

// Field maps a record key to a label.
type Field struct {
	Source  string
	Label   string
	Numeric bool // form input is sent as a JSON number when it parses as one
}

// Screen describes one resource's list grid and create form.
type Screen struct {
	Name     string // route key, e.g. "drivers"
	Resource string // API path relative to the base URL
	Title    string
	Columns  []Field
	Inputs   []Field // empty for read-only screens
}

var Drivers = Screen{
	Name:     "drivers",
	Resource: "drivers",
	Title:    "Drivers",
	Columns: []Field{
		{Source: "id", Label: "ID"},
		{Source: "forename", Label: "Forename"},
		{Source: "surname", Label: "Surname"},
		{Source: "code", Label: "Code"},
		{Source: "number", Label: "Number"},
		{Source: "nationality", Label: "Nationality"},
		{Source: "dob", Label: "Date of Birth"},
	},
	Inputs: []Field{
		{Source: "driver_ref", Label: "Driver Ref"},
		{Source: "number", Label: "Number", Numeric: true},
		{Source: "code", Label: "Code"},
		{Source: "forename", Label: "Forename"},
		{Source: "surname", Label: "Surname"},
		{Source: "dob", Label: "Date of Birth"},
		{Source: "nationality", Label: "Nationality"},
		{Source: "url", Label: "URL"},
	},
}

var Constructors = Screen{
	Name:     "constructors",
	Resource: "constructors",
	Title:    "Constructors",
	Columns: []Field{
		{Source: "id", Label: "ID"},
		{Source: "constructor_ref", Label: "Constructor Ref"},
		{Source: "name", Label: "Name"},
		{Source: "nationality", Label: "Nationality"},
	},
	Inputs: []Field{
		{Source: "constructor_ref", Label: "Constructor Ref"},
		{Source: "name", Label: "Name"},
		{Source: "nationality", Label: "Nationality"},
		{Source: "url", Label: "URL"},
	},
}

var ConstructorStandings = Screen{
	Name:     "standings",
	Resource: api.ConstructorStandingsPath,
	Title:    "Constructor Standings",
	Columns: []Field{
		{Source: "constructor_name", Label: "Constructor"},
		{Source: "total_points", Label: "Total Points"},
	},
}

// TopDriversColumns is the dashboard grid over the top-drivers endpoint.
var TopDriversColumns = []Field{
	{Source: "id", Label: "ID"},
	{Source: "full_name", Label: "Full Name"},
	{Source: "nationality", Label: "Nationality"},
	{Source: "number_of_wins", Label: "Number of Wins"},
}

// All returns every screen in menu order.
func All() []Screen {
	return []Screen{Drivers, Constructors, ConstructorStandings}
}

// Lookup finds a screen by route key.
func Lookup(name string) (Screen, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Screen{}, false
}

// ReadOnly reports whether the screen has no create form.
func (s Screen) ReadOnly() bool {
	return len(s.Inputs) == 0
}

// Headers returns the column labels.
func (s Screen) Headers() []string {
	return Labels(s.Columns)
}

// Row formats a record into the screen's columns. Missing keys render as "".
func (s Screen) Row(r api.Record) []string {
	return Row(s.Columns, r)
}

// RecordFromInputs builds the create payload from form values keyed by
// Source. Blank inputs are left out; nothing else is validated.
func (s Screen) RecordFromInputs(values map[string]string) api.Record {
	rec := api.Record{}
	for _, f := range s.Inputs {
		v := strings.TrimSpace(values[f.Source])
		if v == "" {
			continue
		}
		rec[f.Source] = v
		if !f.Numeric {
			continue
		}
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			rec[f.Source] = n
		} else if x, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(x) && !math.IsInf(x, 0) {
			rec[f.Source] = x
		}
	}
	return rec
}

// Labels returns the labels of fields.
func Labels(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Label
	}
	return out
}

// Row formats a record into the given columns.
func Row(fields []Field, r api.Record) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = jsonutil.ToString(r[f.Source])
	}
	return out
}

// DriverWinsRows formats the dashboard grid rows in API order.
func DriverWinsRows(data []api.DriverWinRecord) [][]string {
	rows := make([][]string, len(data))
	for i, d := range data {
		rows[i] = []string{
			strconv.Itoa(d.ID),
			d.FullName,
			d.Nationality,
			strconv.Itoa(d.NumberOfWins),
		}
	}
	return rows
}
