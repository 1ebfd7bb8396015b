// Package model contains the Bubble Tea models backing the interactive
// CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliolabs/folio/internal/application/usecase"
	"github.com/foliolabs/folio/internal/cli/styles"
	"github.com/foliolabs/folio/internal/domain/entity"
)

type statesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

func (k statesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Quit}
}

func (k statesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Delete, k.Quit}}
}

var statesKeys = statesKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// StatesModel is the interactive browser over remembered view positions.
type StatesModel struct {
	listUC  *usecase.ListViewsUseCase
	purgeUC *usecase.PurgeViewsUseCase

	states  []*entity.ViewState
	cursor  int
	loading bool
	err     error

	spinner spinner.Model
	help    help.Model
	theme   *styles.Theme
	ctx     context.Context
}

// NewStatesModel creates the view-state browser model.
func NewStatesModel(ctx context.Context, theme *styles.Theme, listUC *usecase.ListViewsUseCase, purgeUC *usecase.PurgeViewsUseCase) StatesModel {
	return StatesModel{
		listUC:  listUC,
		purgeUC: purgeUC,
		loading: true,
		spinner: styles.NewSpinner(theme),
		help:    help.New(),
		theme:   theme,
		ctx:     ctx,
	}
}

type statesLoadedMsg struct {
	states []*entity.ViewState
	err    error
}

type stateDeletedMsg struct {
	fingerprint string
	err         error
}

// Init implements tea.Model.
func (m StatesModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadStates())
}

func (m StatesModel) loadStates() tea.Cmd {
	return func() tea.Msg {
		states, err := m.listUC.Execute(m.ctx)
		return statesLoadedMsg{states: states, err: err}
	}
}

func (m StatesModel) deleteState(fingerprint string) tea.Cmd {
	return func() tea.Msg {
		err := m.purgeUC.One(m.ctx, fingerprint)
		return stateDeletedMsg{fingerprint: fingerprint, err: err}
	}
}

// Update implements tea.Model.
func (m StatesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statesLoadedMsg:
		m.loading = false
		m.states = msg.states
		m.err = msg.err
		return m, nil

	case stateDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.states = removeByFingerprint(m.states, msg.fingerprint)
		if m.cursor >= len(m.states) && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, statesKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, statesKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, statesKeys.Down):
			if m.cursor < len(m.states)-1 {
				m.cursor++
			}
		case key.Matches(msg, statesKeys.Delete):
			if m.cursor < len(m.states) {
				return m, m.deleteState(m.states[m.cursor].Fingerprint)
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m StatesModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Remembered view positions"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " loading...\n")
	case m.err != nil:
		b.WriteString(m.theme.ErrorStyle.Render("error: "+m.err.Error()) + "\n")
	case len(m.states) == 0:
		b.WriteString(m.theme.Subtle.Render("no stored positions") + "\n")
	default:
		for i, state := range m.states {
			line := fmt.Sprintf("%s  page %d  zoom %s  %s",
				shortFingerprint(state.Fingerprint), state.Page,
				zoomOrDefault(state.Zoom),
				state.UpdatedAt.Format("2006-01-02 15:04"))
			if i == m.cursor {
				b.WriteString(m.theme.ListItemSelected.Render("> " + line))
			} else {
				b.WriteString(m.theme.ListItem.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(statesKeys))
	return b.String()
}

func removeByFingerprint(states []*entity.ViewState, fingerprint string) []*entity.ViewState {
	out := states[:0]
	for _, s := range states {
		if s.Fingerprint != fingerprint {
			out = append(out, s)
		}
	}
	return out
}

func shortFingerprint(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}

func zoomOrDefault(zoom string) string {
	if zoom == "" {
		return "auto"
	}
	return zoom
}
