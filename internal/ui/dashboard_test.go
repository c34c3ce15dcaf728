package ui

import (
	"errors"
	"strings"
	"testing"

	"f1dash/internal/api"
)

func testDrivers() []api.DriverWinRecord {
	return []api.DriverWinRecord{
		{ID: 1, FullName: "Lewis Hamilton", Nationality: "British", NumberOfWins: 105},
		{ID: 30, FullName: "Michael Schumacher", Nationality: "German", NumberOfWins: 91},
		{ID: 830, FullName: "Max Verstappen", Nationality: "Dutch", NumberOfWins: 63},
	}
}

func testStandings() []api.ConstructorStanding {
	return []api.ConstructorStanding{
		{ConstructorName: "McLaren", TotalPoints: 666},
		{ConstructorName: "Ferrari", TotalPoints: 652},
	}
}

func TestDashboardView_InitFetchesEachEndpointOnce(t *testing.T) {
	src := &fakeSource{drivers: testDrivers(), standings: testStandings()}
	d := NewDashboardView(src, quietLogger())

	msgs := runCmd(d.Init())
	if len(msgs) != 2 {
		t.Fatalf("expected 2 fetch results, got %d: %#v", len(msgs), msgs)
	}
	if src.driverCalls != 1 || src.standingCalls != 1 {
		t.Errorf("expected one call per endpoint, got drivers=%d standings=%d", src.driverCalls, src.standingCalls)
	}
	for _, m := range msgs {
		d.Update(m)
	}
	if len(d.Drivers) != 3 || len(d.Standings) != 2 {
		t.Errorf("expected both panels loaded, got %d drivers, %d standings", len(d.Drivers), len(d.Standings))
	}
	if d.Loading() {
		t.Error("expected loading to finish")
	}
}

func TestDashboardView_MessagesSetOnlyTheirOwnState(t *testing.T) {
	d := NewDashboardView(&fakeSource{}, quietLogger())

	d.Update(StandingsLoadedMsg{Standings: testStandings()})
	if d.Drivers != nil {
		t.Error("standings result must not touch drivers")
	}
	if len(d.Standings) != 2 {
		t.Errorf("expected standings set, got %v", d.Standings)
	}
	if !d.Loading() {
		t.Error("drivers fetch is still outstanding")
	}

	d.Update(TopDriversLoadedMsg{Drivers: testDrivers()})
	if len(d.Standings) != 2 || len(d.Drivers) != 3 {
		t.Error("drivers result must not touch standings")
	}
}

func TestDashboardView_FailureLeavesStateNil(t *testing.T) {
	d := NewDashboardView(&fakeSource{}, quietLogger())

	d.Update(TopDriversLoadedMsg{Err: errors.New("connection refused")})
	d.Update(StandingsLoadedMsg{Standings: testStandings()})

	if d.Drivers != nil {
		t.Errorf("expected drivers to stay nil, got %v", d.Drivers)
	}
	out := d.View()
	if !strings.Contains(out, "Unavailable") {
		t.Errorf("expected failure placeholder, got:\n%s", out)
	}
	if !strings.Contains(out, "McLaren") {
		t.Errorf("expected standings chart to render, got:\n%s", out)
	}
}

func TestDashboardView_ViewKeepsGridInAPIOrder(t *testing.T) {
	d := NewDashboardView(&fakeSource{}, quietLogger())
	d.Update(TopDriversLoadedMsg{Drivers: testDrivers()})
	d.Update(StandingsLoadedMsg{Standings: testStandings()})

	out := d.View()
	grid := out[:strings.Index(out, "Top Drivers by Wins (All Time)")]
	ham := strings.Index(grid, "Lewis Hamilton")
	ver := strings.Index(grid, "Max Verstappen")
	if ham < 0 || ver < 0 || ham > ver {
		t.Errorf("expected grid rows in API order, got:\n%s", grid)
	}
	for _, want := range []string{"Full Name", "Number of Wins", "Constructor Standings (2024)", "Total Points"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if d.Drivers[0].FullName != "Lewis Hamilton" {
		t.Error("charting must not reorder the stored rows")
	}
}

func TestDashboardView_EmptyResultShowsNoData(t *testing.T) {
	d := NewDashboardView(&fakeSource{}, quietLogger())
	d.Update(TopDriversLoadedMsg{Drivers: nil})
	d.Update(StandingsLoadedMsg{Standings: []api.ConstructorStanding{}})

	out := d.View()
	if !strings.Contains(out, "No data") {
		t.Errorf("expected placeholder for nil drivers, got:\n%s", out)
	}
	if strings.Contains(out, "Loading") {
		t.Errorf("finished panels should not show loading, got:\n%s", out)
	}
}

func TestDashboardView_ReloadKey(t *testing.T) {
	src := &fakeSource{drivers: testDrivers(), standings: testStandings()}
	d := NewDashboardView(src, quietLogger())
	d.Update(TopDriversLoadedMsg{Drivers: testDrivers()})
	d.Update(StandingsLoadedMsg{Standings: testStandings()})

	_, cmd := d.Update(keyMsg("r"))
	if !d.Loading() {
		t.Error("expected loading after r")
	}
	if len(d.Drivers) != 3 {
		t.Error("loaded data should stay visible while reloading")
	}
	runCmd(cmd)
	if src.driverCalls != 1 || src.standingCalls != 1 {
		t.Errorf("expected one refetch per endpoint, got drivers=%d standings=%d", src.driverCalls, src.standingCalls)
	}
}

func TestDashboardView_RefreshWhileLoading(t *testing.T) {
	src := &fakeSource{drivers: testDrivers(), standings: testStandings()}
	d := NewDashboardView(src, quietLogger())

	msgs := runCmd(d.Init())
	if _, cmd := d.Update(keyMsg("r")); cmd != nil {
		t.Error("r should not refetch while the dashboard is loading")
	}
	if src.driverCalls != 1 || src.standingCalls != 1 {
		t.Errorf("expected one fetch per endpoint, got drivers=%d standings=%d", src.driverCalls, src.standingCalls)
	}

	for _, m := range msgs {
		d.Update(m)
	}
	_, cmd := d.Update(keyMsg("r"))
	runCmd(cmd)
	if src.driverCalls != 2 || src.standingCalls != 2 {
		t.Errorf("expected refetch once loaded, got drivers=%d standings=%d", src.driverCalls, src.standingCalls)
	}
}
