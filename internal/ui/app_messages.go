package ui

import "f1dash/internal/api"

// ShowDashboardMsg switches to the dashboard (SPC d).
type ShowDashboardMsg struct{}

// OpenListMsg mounts a fresh list screen for the named resource (SPC l ...).
type OpenListMsg struct {
	Screen string
}

// OpenCreateMsg mounts the create form for the named resource (SPC c ... or c).
type OpenCreateMsg struct {
	Screen string
}

// RefreshMsg reloads whatever the current mode shows.
type RefreshMsg struct{}

// TopDriversLoadedMsg carries the top-drivers fetch result. Drivers is nil
// when the API returned no data or the fetch failed.
type TopDriversLoadedMsg struct {
	Drivers []api.DriverWinRecord
	Err     error
}

// StandingsLoadedMsg carries the constructor standings fetch result.
type StandingsLoadedMsg struct {
	Standings []api.ConstructorStanding
	Err       error
}

// ListLoadedMsg carries one page of a resource list. Screen and Params
// identify the request so stale pages can be dropped.
type ListLoadedMsg struct {
	Screen string
	Params api.ListParams
	Result api.ListResult
	Err    error
}

// RecordCreatedMsg is the outcome of submitting a create form.
type RecordCreatedMsg struct {
	Screen string
	Record api.Record
	Err    error
}

// ShowDeleteRecordMsg asks for confirmation before deleting a record.
type ShowDeleteRecordMsg struct {
	Screen string
	ID     string
	Label  string
}

// DeleteRecordMsg is sent when the user confirms a delete.
type DeleteRecordMsg struct {
	Screen string
	ID     string
}

// RecordDeletedMsg is the outcome of a delete.
type RecordDeletedMsg struct {
	Screen string
	ID     string
	Err    error
}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}
