package ui

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"f1dash/internal/api"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeSource is an in-memory DataSource that records calls.
type fakeSource struct {
	mu sync.Mutex

	drivers      []api.DriverWinRecord
	driversErr   error
	standings    []api.ConstructorStanding
	standingsErr error
	list         api.ListResult
	listErr      error
	created      api.Record
	createErr    error
	deleteErr    error

	driverCalls   int
	standingCalls int
	listCalls     []api.ListParams
	createdWith   []api.Record
	deletedIDs    []string
}

func (f *fakeSource) TopDriversByWins(ctx context.Context) ([]api.DriverWinRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.driverCalls++
	return f.drivers, f.driversErr
}

func (f *fakeSource) ConstructorStandings(ctx context.Context) ([]api.ConstructorStanding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.standingCalls++
	return f.standings, f.standingsErr
}

func (f *fakeSource) GetList(ctx context.Context, resource string, params api.ListParams) (api.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, params)
	return f.list, f.listErr
}

func (f *fakeSource) Create(ctx context.Context, resource string, rec api.Record) (api.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdWith = append(f.createdWith, rec)
	return f.created, f.createErr
}

func (f *fakeSource) Delete(ctx context.Context, resource, id string) (api.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedIDs = append(f.deletedIDs, id)
	return api.Record{"id": id}, f.deleteErr
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runCmd executes cmd and flattens batches, returning every non-nil message.
// Spinner ticks are dropped.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	switch msg.(type) {
	case nil, spinner.TickMsg:
		return nil
	}
	return []tea.Msg{msg}
}
