package ui

import (
	"log/slog"
	"strings"

	"f1dash/internal/api"
	"f1dash/internal/chart"
	"f1dash/internal/resource"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 80

// panelState tracks one dashboard fetch.
type panelState struct {
	done   bool
	failed bool
}

// DashboardView shows the top drivers grid and the two ranking charts.
// Drivers and Standings stay nil until their fetch returns data.
type DashboardView struct {
	Drivers   []api.DriverWinRecord
	Standings []api.ConstructorStanding

	drivers   panelState
	standings panelState
	started   bool
	source    DataSource
	logger    *slog.Logger
	spinner   spinner.Model
	width     int
}

var _ View = (*DashboardView)(nil)

// NewDashboardView creates a dashboard. Data arrives via TopDriversLoadedMsg
// and StandingsLoadedMsg once Init's commands run.
func NewDashboardView(source DataSource, logger *slog.Logger) *DashboardView {
	if logger == nil {
		logger = slog.Default()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))
	return &DashboardView{
		source:  source,
		logger:  logger,
		spinner: s,
		width:   defaultWidth,
	}
}

// Init implements View. It issues the two dashboard fetches in one batch.
func (d *DashboardView) Init() tea.Cmd {
	return d.Refresh()
}

// Refresh re-issues both fetches. Loaded data stays on screen until replaced.
// It does nothing while a fetch is still outstanding.
func (d *DashboardView) Refresh() tea.Cmd {
	if d.started && d.Loading() {
		return nil
	}
	d.started = true
	d.drivers = panelState{}
	d.standings = panelState{}
	return tea.Batch(d.spinner.Tick, loadTopDriversCmd(d.source), loadStandingsCmd(d.source))
}

// Loading reports whether either fetch is outstanding.
func (d *DashboardView) Loading() bool {
	return !d.drivers.done || !d.standings.done
}

// Update implements View.
func (d *DashboardView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case TopDriversLoadedMsg:
		d.drivers.done = true
		if msg.Err != nil {
			d.drivers.failed = true
			d.logger.Error("load top drivers by wins", "err", msg.Err)
			return d, nil
		}
		d.Drivers = msg.Drivers
		return d, nil
	case StandingsLoadedMsg:
		d.standings.done = true
		if msg.Err != nil {
			d.standings.failed = true
			d.logger.Error("load constructor standings", "err", msg.Err)
			return d, nil
		}
		d.Standings = msg.Standings
		return d, nil
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil
	case spinner.TickMsg:
		if d.Loading() {
			var cmd tea.Cmd
			d.spinner, cmd = d.spinner.Update(msg)
			return d, cmd
		}
		return d, nil
	case tea.KeyMsg:
		if msg.String() == "r" {
			return d, d.Refresh()
		}
	}
	return d, nil
}

// View implements View.
func (d *DashboardView) View() string {
	var b strings.Builder
	title := Styles.Title.Render("F1 Dashboard")
	if d.Loading() {
		title += " " + d.spinner.View()
	}
	b.WriteString(title + "\n")
	b.WriteString(Styles.Hint.Render("Press [SPC] for commands, r to reload") + "\n\n")

	b.WriteString(Styles.Section.Render("Top Drivers by Wins") + "\n")
	if d.Drivers == nil {
		b.WriteString(d.placeholder(d.drivers) + "\n")
	} else {
		grid := newGrid(resource.Labels(resource.TopDriversColumns), resource.DriverWinsRows(d.Drivers), len(d.Drivers)+gridChrome, false)
		b.WriteString(grid.View() + "\n")
	}
	b.WriteString("\n")

	if c := chart.DriverWins(d.Drivers); c != nil {
		b.WriteString(chart.RenderText(c, d.width) + "\n")
	} else {
		b.WriteString(Styles.Section.Render("Top Drivers by Wins (All Time)") + "\n" + d.placeholder(d.drivers) + "\n")
	}
	b.WriteString("\n")

	if c := chart.ConstructorPoints(d.Standings); c != nil {
		b.WriteString(chart.RenderText(c, d.width))
	} else {
		b.WriteString(Styles.Section.Render("Constructor Standings (2024)") + "\n" + d.placeholder(d.standings))
	}
	return b.String()
}

func (d *DashboardView) placeholder(p panelState) string {
	switch {
	case p.failed:
		return Styles.Error.Render("Unavailable (see log)")
	case p.done:
		return Styles.Empty.Render("No data")
	default:
		return Styles.Empty.Render(d.spinner.View() + " Loading…")
	}
}
