package api

import (
	"context"
	"net/http"
	"net/url"

	"f1dash/internal/jsonutil"
)

// Dashboard endpoint paths, relative to the API base URL.
const (
	TopDriversByWinsPath     = "dashboard/top_drivers_by_wins"
	ConstructorStandingsPath = "my/my_constructor_standings"
)

// TopDriversRange is the fixed window requested by the dashboard.
const TopDriversRange = "[0,9]"

var jsonAccept = http.Header{"Accept": {"application/json"}}

// TopDriversByWinsURL is the dashboard's driver fetch URL.
func (c *Client) TopDriversByWinsURL() string {
	return c.URL(TopDriversByWinsPath, url.Values{"range": {TopDriversRange}})
}

// ConstructorStandingsURL is the dashboard's standings fetch URL.
func (c *Client) ConstructorStandingsURL() string {
	return c.URL(ConstructorStandingsPath, nil)
}

// TopDriversByWins fetches the top ten drivers by wins in API order.
// A null payload yields a nil slice.
func (c *Client) TopDriversByWins(ctx context.Context) ([]DriverWinRecord, error) {
	resp, err := c.FetchJSON(ctx, c.TopDriversByWinsURL(), &Options{Method: http.MethodGet, Header: jsonAccept})
	if err != nil {
		return nil, err
	}
	return jsonutil.DecodeArrayAllowNull[DriverWinRecord]([]byte(resp.Body), "top drivers by wins")
}

// ConstructorStandings fetches the constructor standings in API order.
// A null payload yields a nil slice.
func (c *Client) ConstructorStandings(ctx context.Context) ([]ConstructorStanding, error) {
	resp, err := c.FetchJSON(ctx, c.ConstructorStandingsURL(), &Options{Method: http.MethodGet, Header: jsonAccept})
	if err != nil {
		return nil, err
	}
	return jsonutil.DecodeArrayAllowNull[ConstructorStanding]([]byte(resp.Body), "constructor standings")
}
