// Package statusui is the CLI's small bubbletea front end: an
// animated progress screen shown while the sample catalog loads, in
// the teacher's startup-progress style (internal/supercollider's
// StartupProgressModel), adapted here to track catalog loading instead
// of waiting on a SuperCollider /cpuusage heartbeat.
package statusui

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg float64
type doneMsg struct{}
type errMsg struct{ err error }

// LoadingModel drives a progress bar while roots are scanned in the
// background; Run blocks until loading finishes or fails.
type LoadingModel struct {
	progress progress.Model
	width    int
	height   int
	done     bool
	err      error

	load func() error
}

// NewLoadingModel wraps load (the actual catalog.Load call) with the
// animated status screen.
func NewLoadingModel(load func() error) LoadingModel {
	p := progress.New(progress.WithDefaultGradient())
	p.Width = 50
	return LoadingModel{progress: p, load: load}
}

func (m LoadingModel) Init() tea.Cmd {
	return tea.Batch(m.startLoad(), m.tick())
}

func (m LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progress.Width = msg.Width - 10
		return m, nil

	case tickMsg:
		cmd := m.progress.SetPercent(float64(msg))
		if !m.done {
			return m, tea.Batch(cmd, m.tick())
		}
		return m, cmd

	case doneMsg:
		m.done = true
		return m, tea.Quit

	case errMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m LoadingModel) View() string {
	box := lipgloss.NewStyle().Width(m.width).Height(m.height).
		Align(lipgloss.Center).AlignVertical(lipgloss.Center)

	if m.err != nil {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Align(lipgloss.Center)
		return box.Render(style.Render("Failed to load sample catalog:\n" + m.err.Error()))
	}
	if m.done {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true).Align(lipgloss.Center)
		return box.Render(style.Render("Loaded sample catalog ✓"))
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Align(lipgloss.Center)
	content := lipgloss.JoinVertical(lipgloss.Center,
		title.Render("Loading sample catalog"),
		"",
		m.progress.View(),
	)
	return box.Render(content)
}

// Err returns the load error, if any, once the model has finished.
func (m LoadingModel) Err() error { return m.err }

func (m LoadingModel) startLoad() tea.Cmd {
	return func() tea.Msg {
		if err := m.load(); err != nil {
			return errMsg{err}
		}
		return doneMsg{}
	}
}

func (m LoadingModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		// A moving wobble, not a real fraction-complete — catalog.Load
		// runs as one synchronous call, so there is no per-file
		// progress to report, only "still working".
		wobble := 0.5 + 0.3*math.Sin(float64(time.Now().UnixMilli())/200.0)
		return tickMsg(wobble)
	})
}
