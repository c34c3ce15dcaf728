package ui

import (
	"context"
	"fmt"
	"log/slog"

	"f1dash/internal/resource"

	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the root model. It switches between the dashboard, a resource
// list and a resource create form.
type AppModel struct {
	Mode       AppMode
	Dashboard  *DashboardView
	List       *ListView
	Create     *CreateView
	Overlays   OverlayStack
	KeyHandler *KeyHandler
	Source     DataSource
	Logger     *slog.Logger
	Status     string // one-line feedback under the current view

	window *tea.WindowSizeMsg
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.currentView().Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.window = &msg
		var cmds []tea.Cmd
		for _, v := range a.views() {
			_, cmd := v.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case TopDriversLoadedMsg, StandingsLoadedMsg:
		// The dashboard stays mounted across modes, so its results always land.
		_, cmd := a.Dashboard.Update(msg)
		return a, cmd

	case ListLoadedMsg:
		if a.List == nil {
			return a, nil
		}
		_, cmd := a.List.Update(msg)
		return a, cmd

	case ShowDashboardMsg:
		a.Mode = ModeDashboard
		a.Status = ""
		return a, nil

	case OpenListMsg:
		a.Status = ""
		return a, a.openList(msg.Screen)

	case OpenCreateMsg:
		screen, ok := resource.Lookup(msg.Screen)
		if !ok {
			return a, nil
		}
		if screen.ReadOnly() {
			a.Status = screen.Title + " is read-only"
			return a, nil
		}
		a.Status = ""
		a.Mode = ModeResourceCreate
		a.Create = NewCreateView(screen, a.Source, a.Logger)
		return a, tea.Batch(a.Create.Init(), a.resize(a.Create))

	case RecordCreatedMsg:
		if msg.Err != nil {
			if a.Create == nil {
				return a, nil
			}
			_, cmd := a.Create.Update(msg)
			return a, cmd
		}
		a.Logger.Info("record created", "screen", msg.Screen, "id", msg.Record.ID())
		status := fmt.Sprintf("Created #%s", msg.Record.ID())
		if a.Create == nil || a.Create.Screen.Name != msg.Screen {
			// The user already left the form; stay where they are.
			a.Status = status
			if a.Mode == ModeResourceList && a.List != nil && a.List.Screen.Name == msg.Screen {
				return a, a.List.Reload()
			}
			return a, nil
		}
		cmd := a.openList(msg.Screen)
		a.Status = status
		return a, cmd

	case ShowDeleteRecordMsg:
		screen, ok := resource.Lookup(msg.Screen)
		if !ok {
			return a, nil
		}
		a.Overlays.Push(Overlay{
			View:    NewDeleteRecordConfirmModal(screen.Title, screen.Name, msg.ID, msg.Label),
			Dismiss: "esc",
		})
		return a, nil

	case DeleteRecordMsg:
		a.Overlays.Pop()
		screen, ok := resource.Lookup(msg.Screen)
		if !ok {
			return a, nil
		}
		return a, deleteRecordCmd(a.Source, screen, msg.ID)

	case RecordDeletedMsg:
		if msg.Err != nil {
			a.Logger.Error("delete record", "screen", msg.Screen, "id", msg.ID, "err", msg.Err)
			a.Status = "Delete failed: " + errorText(msg.Err)
		} else {
			a.Logger.Info("record deleted", "screen", msg.Screen, "id", msg.ID)
			a.Status = fmt.Sprintf("Deleted #%s", msg.ID)
		}
		if a.List == nil {
			return a, nil
		}
		_, cmd := a.List.Update(msg)
		return a, cmd

	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil

	case RefreshMsg:
		switch a.Mode {
		case ModeDashboard:
			return a, a.Dashboard.Refresh()
		case ModeResourceList:
			if a.List != nil {
				return a, a.List.Reload()
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if cmd, ok := a.Overlays.HandleKey(msg); ok {
			return a, cmd
		}
		// Form inputs take every other key, including q and space.
		if a.Mode != ModeResourceCreate && a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
				return a, keyCmd
			}
		}
		if msg.String() == "esc" {
			return a, a.back()
		}
	}

	_, cmd := a.currentView().Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	base := a.currentView().View()
	if a.Status != "" {
		base += "\n" + Styles.Status.Render(a.Status)
	}
	if top, ok := a.Overlays.Peek(); ok {
		base += "\n" + top.View.View()
	}
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler, a.Mode)
	}
	return base
}

func (a *appModelAdapter) currentView() View {
	switch a.Mode {
	case ModeResourceList:
		if a.List != nil {
			return a.List
		}
	case ModeResourceCreate:
		if a.Create != nil {
			return a.Create
		}
	}
	return a.Dashboard
}

// views returns every mounted view.
func (a *AppModel) views() []View {
	out := []View{a.Dashboard}
	if a.List != nil {
		out = append(out, a.List)
	}
	if a.Create != nil {
		out = append(out, a.Create)
	}
	return out
}

// openList mounts a fresh list for the named screen, which fetches once.
func (a *AppModel) openList(name string) tea.Cmd {
	screen, ok := resource.Lookup(name)
	if !ok {
		return nil
	}
	a.Mode = ModeResourceList
	a.Create = nil
	a.Overlays.Clear()
	a.List = NewListView(screen, a.Source, a.Logger)
	return tea.Batch(a.resize(a.List), a.List.Init())
}

// back leaves a create form for its list and a list for the dashboard.
func (a *AppModel) back() tea.Cmd {
	a.Status = ""
	switch a.Mode {
	case ModeResourceCreate:
		name := a.Create.Screen.Name
		a.Create = nil
		if a.List != nil && a.List.Screen.Name == name {
			a.Mode = ModeResourceList
			return nil
		}
		return a.openList(name)
	case ModeResourceList:
		a.Mode = ModeDashboard
		a.List = nil
	}
	return nil
}

// resize replays the last window size into a newly mounted view.
func (a *AppModel) resize(v View) tea.Cmd {
	if a.window == nil {
		return nil
	}
	_, cmd := v.Update(*a.window)
	return cmd
}

// NewAppModel creates the root application model reading from source.
func NewAppModel(source DataSource, logger *slog.Logger) *AppModel {
	if logger == nil {
		logger = slog.Default()
	}
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindMsg("SPC d", ShowDashboardMsg{}, "Dashboard")
	reg.BindMsg("SPC r", RefreshMsg{}, "Reload", ModeDashboard, ModeResourceList)
	reg.BindMsg("SPC l d", OpenListMsg{Screen: resource.Drivers.Name}, "Drivers")
	reg.BindMsg("SPC l c", OpenListMsg{Screen: resource.Constructors.Name}, "Constructors")
	reg.BindMsg("SPC l s", OpenListMsg{Screen: resource.ConstructorStandings.Name}, "Constructor standings")
	reg.BindMsg("SPC c d", OpenCreateMsg{Screen: resource.Drivers.Name}, "Driver")
	reg.BindMsg("SPC c c", OpenCreateMsg{Screen: resource.Constructors.Name}, "Constructor")
	return &AppModel{
		Mode:       ModeDashboard,
		Dashboard:  NewDashboardView(source, logger),
		KeyHandler: NewKeyHandler(reg),
		Source:     source,
		Logger:     logger,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Run starts the terminal UI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, source DataSource, logger *slog.Logger) error {
	p := tea.NewProgram(NewAppModel(source, logger).AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
