package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// paymentDoneMsg carries the result of the background payment call.
type paymentDoneMsg struct {
	err error
}

// SpinnerModel shows a spinner while a payment (or any slow call)
// completes in the background.
type SpinnerModel struct {
	spinner spinner.Model
	message string
	run     func(context.Context) error
	styles  Styles
	err     error
	done    bool
}

// NewSpinnerModel wraps run with a spinner labelled by message.
func NewSpinnerModel(message string, run func(context.Context) error) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)
	return SpinnerModel{
		spinner: s,
		message: message,
		run:     run,
		styles:  DefaultStyles(),
	}
}

// Init starts the spinner and the background call (required by Bubble Tea)
func (m SpinnerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return paymentDoneMsg{err: m.run(context.Background())}
		},
	)
}

// Update handles spinner ticks and completion (required by Bubble Tea)
func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case paymentDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = context.Canceled
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the spinner line (required by Bubble Tea)
func (m SpinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.styles.Value.Render(m.message) + "\n"
}

// RunWithSpinner executes run while showing an animated spinner, and
// returns run's error.
func RunWithSpinner(message string, run func(context.Context) error) error {
	model := NewSpinnerModel(message, run)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	if done, ok := final.(SpinnerModel); ok {
		return done.err
	}
	return nil
}
