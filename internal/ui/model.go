package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/commitgpt/commitgpt/internal/app"
	"github.com/commitgpt/commitgpt/internal/domain"
)

// State is the selector's explicit state machine. Committed and Cancelled
// are terminal; the single commit call happens on the Editing → Committing
// transition and never anywhere else.
type State int

const (
	StateLoading State = iota
	StatePresenting
	StateEditing
	StateReRolling
	StateCommitting
	StateCommitted
	StateCancelled
	StateFailed
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Model is the Bubble Tea model for the selection loop.
type Model struct {
	app        *app.App
	dryRun     bool
	state      State
	run        *app.Run
	candidates []domain.Candidate
	cursor     int
	editor     textarea.Model
	spinner    spinner.Model
	committed  bool
	hash       string
	err        error
	width      int
}

// New creates the selector model.
func New(application *app.App, dryRun bool) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = selectedStyle

	ed := textarea.New()
	ed.CharLimit = 0
	ed.SetWidth(72)
	ed.SetHeight(8)

	return &Model{
		app:     application,
		dryRun:  dryRun,
		state:   StateLoading,
		editor:  ed,
		spinner: s,
		width:   80,
	}
}

// Outcome reports the terminal state and, for StateFailed, the error behind
// it. Called by the CLI after the program exits to pick the exit status.
func (m *Model) Outcome() (State, error) {
	return m.state, m.err
}

// Init starts the first suggestion fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdSuggest(nil))
}

// Update drives the state machine.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor.SetWidth(min(msg.Width-4, 100))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// Cannot cancel mid-commit; everything before that transition
			// is side-effect free.
			if m.state == StateCommitting {
				return m, nil
			}
			m.state = StateCancelled
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case msgSuggestions:
		if msg.err != nil {
			m.state = StateFailed
			m.err = msg.err
			return m, tea.Quit
		}
		m.run = msg.run
		m.candidates = msg.candidates
		m.cursor = 0
		m.state = StatePresenting
		return m, nil

	case msgCommitDone:
		if msg.err != nil {
			m.state = StateFailed
			m.err = msg.err
			return m, tea.Quit
		}
		m.state = StateCommitted
		m.hash = msg.hash
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StatePresenting:
		return m.handlePresentingKey(msg)
	case StateEditing:
		return m.handleEditingKey(msg)
	case StateCommitted:
		return m, tea.Quit
	}
	// Loading, re-rolling and committing ignore keys.
	return m, nil
}

func (m *Model) handlePresentingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.candidates)-1 {
			m.cursor++
		}
	case "enter", "e":
		if m.cursor < len(m.candidates) {
			m.editor.SetValue(m.candidates[m.cursor].String())
			m.editor.Focus()
			m.state = StateEditing
			return m, textarea.Blink
		}
	case "r":
		m.state = StateReRolling
		return m, m.cmdSuggest(m.run)
	case "q", "esc":
		m.state = StateCancelled
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editor.Blur()
		m.state = StatePresenting
		return m, nil
	case "ctrl+s":
		if m.committed {
			return m, nil
		}
		m.committed = true
		m.state = StateCommitting
		return m, m.cmdCommit(m.editor.Value())
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// View renders the current state.
func (m *Model) View() string {
	switch m.state {
	case StateLoading:
		return m.spinner.View() + " Asking the model for suggestions...\n"
	case StateReRolling:
		return m.spinner.View() + " Re-rolling...\n"
	case StatePresenting:
		return m.viewList()
	case StateEditing:
		return titleStyle.Render("Edit commit message") + "\n\n" +
			m.editor.View() + "\n\n" +
			helpStyle.Render("ctrl+s commit · esc back") + "\n"
	case StateCommitting:
		return m.spinner.View() + " Committing...\n"
	case StateCommitted:
		return okStyle.Render("✓ committed "+m.hash) + "\n"
	case StateFailed:
		if m.err != nil {
			return errStyle.Render("error: "+m.err.Error()) + "\n"
		}
		return errStyle.Render("error") + "\n"
	default:
		return ""
	}
}

func (m *Model) viewList() string {
	out := titleStyle.Render("Pick a commit message") + "\n"
	if m.run != nil && m.run.Diff.Truncated {
		out += warnStyle.Render("warning: staged diff was truncated to fit the prompt budget") + "\n"
	}
	if m.run != nil && m.run.SecretsExposed {
		out += warnStyle.Render("warning: diff contains credential-looking content and redaction is off") + "\n"
	}
	out += "\n"

	for i, c := range m.candidates {
		line := fmt.Sprintf("  %d) %s", i+1, c.Summary())
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("> %d) %s", i+1, c.Summary()))
		}
		out += line + "\n"
	}

	out += "\n" + helpStyle.Render("↑/↓ move · enter pick+edit · r re-roll · q cancel") + "\n"
	return out
}
