package ui

import (
	"context"

	"f1dash/internal/api"
)

// DataSource is the part of the API client the terminal UI reads and writes.
// *api.Client satisfies it.
type DataSource interface {
	TopDriversByWins(ctx context.Context) ([]api.DriverWinRecord, error)
	ConstructorStandings(ctx context.Context) ([]api.ConstructorStanding, error)
	GetList(ctx context.Context, resource string, params api.ListParams) (api.ListResult, error)
	Create(ctx context.Context, resource string, rec api.Record) (api.Record, error)
	Delete(ctx context.Context, resource, id string) (api.Record, error)
}

var _ DataSource = (*api.Client)(nil)
