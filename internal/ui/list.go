package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"f1dash/internal/api"
	"f1dash/internal/resource"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const listHeight = 12

// ListView is the paginated grid of one resource.
type ListView struct {
	Screen  resource.Screen
	Params  api.ListParams
	Records []api.Record
	Total   int
	Err     error

	loading bool
	stale   bool
	table   table.Model
	source  DataSource
	logger  *slog.Logger
	spinner spinner.Model
	height  int
}

var _ View = (*ListView)(nil)

// NewListView creates a list on page 1 with the default page size and sort.
func NewListView(screen resource.Screen, source DataSource, logger *slog.Logger) *ListView {
	if logger == nil {
		logger = slog.Default()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))
	v := &ListView{
		Screen:  screen,
		Params:  api.ListParams{}.Normalize(),
		source:  source,
		logger:  logger,
		spinner: s,
		height:  listHeight,
	}
	v.table = newGrid(screen.Headers(), nil, v.height, true)
	return v
}

// Init implements View. It fetches the current page once.
func (v *ListView) Init() tea.Cmd {
	return v.Reload()
}

// Reload fetches the current page again. It does nothing while a fetch is
// outstanding.
func (v *ListView) Reload() tea.Cmd {
	if v.loading {
		return nil
	}
	v.loading = true
	return tea.Batch(v.spinner.Tick, loadListCmd(v.source, v.Screen, v.Params))
}

// Loading reports whether a page fetch is outstanding.
func (v *ListView) Loading() bool {
	return v.loading
}

// Pages returns the number of pages for the last known total, at least 1.
func (v *ListView) Pages() int {
	if v.Total <= 0 {
		return 1
	}
	return (v.Total + v.Params.PerPage - 1) / v.Params.PerPage
}

// Selected returns the record under the cursor.
func (v *ListView) Selected() (api.Record, bool) {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.Records) {
		return nil, false
	}
	return v.Records[i], true
}

// Update implements View.
func (v *ListView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ListLoadedMsg:
		if msg.Screen != v.Screen.Name || msg.Params.Page != v.Params.Page {
			return v, nil
		}
		v.loading = false
		if v.stale {
			v.stale = false
			return v, v.Reload()
		}
		if msg.Err != nil {
			v.Err = msg.Err
			v.logger.Error("load list", "resource", v.Screen.Resource, "page", msg.Params.Page, "err", msg.Err)
			return v, nil
		}
		v.Err = nil
		v.Records = msg.Result.Records
		v.Total = msg.Result.Total
		v.setRows()
		return v, nil
	case RecordDeletedMsg:
		if msg.Screen != v.Screen.Name || msg.Err != nil {
			return v, nil
		}
		if v.loading {
			// The outstanding page may predate the delete.
			v.stale = true
			return v, nil
		}
		return v, v.Reload()
	case tea.WindowSizeMsg:
		v.height = max(msg.Height-8, 3)
		v.table.SetHeight(v.height)
		return v, nil
	case spinner.TickMsg:
		if v.loading {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "n", "right":
			if !v.loading && v.Params.Page < v.Pages() {
				v.Params.Page++
				return v, v.Reload()
			}
			return v, nil
		case "p", "left":
			if !v.loading && v.Params.Page > 1 {
				v.Params.Page--
				return v, v.Reload()
			}
			return v, nil
		case "r":
			return v, v.Reload()
		case "c":
			if v.Screen.ReadOnly() {
				return v, nil
			}
			name := v.Screen.Name
			return v, func() tea.Msg { return OpenCreateMsg{Screen: name} }
		case "d":
			rec, ok := v.Selected()
			if v.Screen.ReadOnly() || !ok || rec.ID() == "" {
				return v, nil
			}
			show := ShowDeleteRecordMsg{Screen: v.Screen.Name, ID: rec.ID(), Label: recordLabel(v.Screen, rec)}
			return v, func() tea.Msg { return show }
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *ListView) setRows() {
	rows := make([][]string, len(v.Records))
	for i, r := range v.Records {
		rows[i] = v.Screen.Row(r)
	}
	v.table = newGrid(v.Screen.Headers(), rows, v.height, true)
}

// View implements View.
func (v *ListView) View() string {
	var b strings.Builder
	title := Styles.Title.Render(fmt.Sprintf("%s (%d)", v.Screen.Title, v.Total))
	if v.loading {
		title += " " + v.spinner.View()
	}
	b.WriteString(title + "\n\n")

	if v.Err != nil {
		b.WriteString(Styles.Error.Render("Error: "+errorText(v.Err)) + "\n\n")
	}
	if len(v.Records) == 0 && !v.loading {
		b.WriteString(Styles.Empty.Render("No records") + "\n")
	} else {
		b.WriteString(v.table.View() + "\n")
	}

	hints := []string{fmt.Sprintf("page %d/%d", v.Params.Page, v.Pages()), "n/p: page", "r: reload"}
	if !v.Screen.ReadOnly() {
		hints = append(hints, "c: create", "d: delete")
	}
	hints = append(hints, "esc: back")
	b.WriteString("\n" + Styles.Hint.Render(strings.Join(hints, "  ")))
	return b.String()
}

// recordLabel picks a human label for a record from its displayed columns.
func recordLabel(s resource.Screen, r api.Record) string {
	var parts []string
	for _, f := range s.Columns {
		if f.Source == "id" {
			continue
		}
		if val := r.Get(f.Source); val != "" {
			parts = append(parts, val)
		}
		if len(parts) == 2 {
			break
		}
	}
	if len(parts) == 0 {
		return "#" + r.ID()
	}
	return strings.Join(parts, " ") + " (#" + r.ID() + ")"
}
