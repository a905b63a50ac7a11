package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DoneMsg stops the wait spinner. It is posted exactly once by the caller
// when the blocking operation completes; a duplicate is harmless.
type DoneMsg struct{}

// Wait is a minimal bubbletea model that repaints a spinner next to a status
// message until a DoneMsg arrives. It is cosmetic only: the blocking work
// runs elsewhere and never depends on this model.
type Wait struct {
	spinner spinner.Model
	message string
	done    bool
}

// NewWait creates a wait model with the given status message.
func NewWait(message string) Wait {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(Warning)
	return Wait{spinner: s, message: message}
}

// Init starts the spinner tick.
func (m Wait) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles spinner ticks and the completion message.
func (m Wait) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

// View renders the status line; empty once done so the line clears.
func (m Wait) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + MutedStyle.Render(m.message)
}
