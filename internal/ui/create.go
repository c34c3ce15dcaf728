package ui

import (
	"errors"
	"log/slog"
	"strings"

	"f1dash/internal/api"
	"f1dash/internal/resource"
	"f1dash/internal/textutil"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CreateView is the create form of one resource: one text input per field.
type CreateView struct {
	Screen resource.Screen
	Err    error

	inputs     map[string]*textinput.Model
	focus      *FocusManager
	submitting bool
	source     DataSource
	logger     *slog.Logger
}

var _ View = (*CreateView)(nil)

// NewCreateView creates a form with focus on the first input.
func NewCreateView(screen resource.Screen, source DataSource, logger *slog.Logger) *CreateView {
	if logger == nil {
		logger = slog.Default()
	}
	v := &CreateView{
		Screen: screen,
		inputs: make(map[string]*textinput.Model, len(screen.Inputs)),
		source: source,
		logger: logger,
	}
	order := make([]string, len(screen.Inputs))
	for i, f := range screen.Inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Label
		ti.Width = 40
		v.inputs[f.Source] = &ti
		order[i] = f.Source
	}
	v.focus = NewFocusManager(order, v.onFocusChange)
	return v
}

func (v *CreateView) onFocusChange(from, to string) {
	if ti, ok := v.inputs[from]; ok {
		ti.Blur()
	}
	if ti, ok := v.inputs[to]; ok {
		ti.Focus()
	}
}

// Focused returns the Source of the focused input.
func (v *CreateView) Focused() string {
	return v.focus.Current
}

// Submitting reports whether a create request is outstanding.
func (v *CreateView) Submitting() bool {
	return v.submitting
}

// Values returns the current input values keyed by field Source.
func (v *CreateView) Values() map[string]string {
	out := make(map[string]string, len(v.inputs))
	for src, ti := range v.inputs {
		out[src] = ti.Value()
	}
	return out
}

// SetValue fills an input.
func (v *CreateView) SetValue(source, value string) {
	if ti, ok := v.inputs[source]; ok {
		ti.SetValue(value)
	}
}

// Init implements View.
func (v *CreateView) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (v *CreateView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordCreatedMsg:
		if msg.Screen != v.Screen.Name {
			return v, nil
		}
		v.submitting = false
		if msg.Err != nil {
			v.Err = msg.Err
			v.logger.Error("create record", "resource", v.Screen.Resource, "err", msg.Err)
		}
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			v.focus.Next()
			return v, nil
		case "shift+tab", "up":
			v.focus.Prev()
			return v, nil
		case "ctrl+s":
			return v, v.submit()
		case "enter":
			if v.focus.IsLast() {
				return v, v.submit()
			}
			v.focus.Next()
			return v, nil
		}
	}

	ti, ok := v.inputs[v.focus.Current]
	if !ok {
		return v, nil
	}
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	return v, cmd
}

func (v *CreateView) submit() tea.Cmd {
	if v.submitting {
		return nil
	}
	v.submitting = true
	v.Err = nil
	return createRecordCmd(v.source, v.Screen, v.Screen.RecordFromInputs(v.Values()))
}

// View implements View.
func (v *CreateView) View() string {
	labelW := 0
	for _, f := range v.Screen.Inputs {
		labelW = max(labelW, textutil.Width(f.Label))
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Create "+v.Screen.Title) + "\n\n")
	for _, f := range v.Screen.Inputs {
		label := Styles.Label.Render(textutil.PadRight(f.Label, labelW))
		if f.Source == v.focus.Current {
			label = Styles.Selected.Render(textutil.PadRight(f.Label, labelW))
		}
		b.WriteString(label + "  " + v.inputs[f.Source].View() + "\n")
	}
	if v.Err != nil {
		b.WriteString("\n" + Styles.Error.Render("Error: "+errorText(v.Err)) + "\n")
	}
	if v.submitting {
		b.WriteString("\n" + Styles.Status.Render("Saving…") + "\n")
	}
	b.WriteString("\n" + Styles.Hint.Render("Tab/Shift+Tab: move  Enter on last field or Ctrl+S: save  Esc: back"))
	return b.String()
}

// errorText prefers the API's own message for HTTP errors.
func errorText(err error) string {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return err.Error()
}
