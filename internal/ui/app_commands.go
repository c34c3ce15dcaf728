package ui

import (
	"context"
	"time"

	"f1dash/internal/api"
	"f1dash/internal/resource"

	tea "github.com/charmbracelet/bubbletea"
)

// requestTimeout bounds each command's API call on top of the client timeout.
const requestTimeout = 30 * time.Second

// loadTopDriversCmd fetches the top-drivers-by-wins rows.
func loadTopDriversCmd(src DataSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		drivers, err := src.TopDriversByWins(ctx)
		return TopDriversLoadedMsg{Drivers: drivers, Err: err}
	}
}

// loadStandingsCmd fetches the constructor standings rows.
func loadStandingsCmd(src DataSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		standings, err := src.ConstructorStandings(ctx)
		return StandingsLoadedMsg{Standings: standings, Err: err}
	}
}

// loadListCmd fetches one page of a resource.
func loadListCmd(src DataSource, screen resource.Screen, params api.ListParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := src.GetList(ctx, screen.Resource, params)
		return ListLoadedMsg{Screen: screen.Name, Params: params, Result: res, Err: err}
	}
}

// createRecordCmd submits a create form payload.
func createRecordCmd(src DataSource, screen resource.Screen, rec api.Record) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		created, err := src.Create(ctx, screen.Resource, rec)
		return RecordCreatedMsg{Screen: screen.Name, Record: created, Err: err}
	}
}

// deleteRecordCmd deletes one record by id.
func deleteRecordCmd(src DataSource, screen resource.Screen, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := src.Delete(ctx, screen.Resource, id)
		return RecordDeletedMsg{Screen: screen.Name, ID: id, Err: err}
	}
}
