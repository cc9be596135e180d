package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyreserve/skyreserve/internal/domain"
)

// pickerKeyMap defines the keyboard shortcuts for the flight picker
type pickerKeyMap struct {
	Select key.Binding
	Quit   key.Binding
}

var pickerKeys = pickerKeyMap{
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select flight"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "cancel"),
	),
}

// PickerModel is the interactive flight selection table.
type PickerModel struct {
	flights  []domain.Flight
	table    table.Model
	styles   Styles
	selected *domain.Flight
	quitting bool
}

// NewPickerModel creates a flight picker over the search results.
func NewPickerModel(flights []domain.Flight) PickerModel {
	columns := []table.Column{
		{Title: "Flight", Width: 10},
		{Title: "Route", Width: 24},
		{Title: "Departs", Width: 10},
		{Title: "Arrives", Width: 10},
		{Title: "Duration", Width: 9},
		{Title: "Seats", Width: 6},
		{Title: "Fare", Width: 14},
	}

	rows := make([]table.Row, len(flights))
	for i, f := range flights {
		rows[i] = table.Row{
			f.FlightNumber,
			f.Route(),
			domain.FormatTime(f.DepartureTime),
			domain.FormatTime(f.ArrivalTime),
			f.Duration(),
			fmt.Sprintf("%d", f.AvailableSeats),
			domain.FormatINR(f.BaseFare),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(flights)+1, 12)),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorPrimary).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Bold(true)
	t.SetStyles(ts)

	return PickerModel{
		flights: flights,
		table:   t,
		styles:  DefaultStyles(),
	}
}

// Selected returns the chosen flight, or nil when the picker was
// cancelled.
func (m PickerModel) Selected() *domain.Flight { return m.selected }

// Init initializes the picker (required by Bubble Tea)
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses (required by Bubble Tea)
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, pickerKeys.Select):
			if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.flights) {
				flight := m.flights[cursor]
				m.selected = &flight
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, pickerKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker (required by Bubble Tea)
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}
	help := m.styles.Muted.Render("↑/↓ move · enter select · q cancel")
	return m.styles.Title.Render("Select a flight") + "\n" +
		m.table.View() + "\n" + help + "\n"
}

// PickFlight runs the picker and returns the selection. A nil flight
// with a nil error means the traveller cancelled.
func PickFlight(flights []domain.Flight) (*domain.Flight, error) {
	model := NewPickerModel(flights)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("flight picker: %w", err)
	}
	picked, ok := final.(PickerModel)
	if !ok {
		return nil, fmt.Errorf("flight picker returned unexpected model")
	}
	return picked.Selected(), nil
}
