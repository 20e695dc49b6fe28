package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
	"github.com/habitline/habitline/internal/stats"
)

// Model is the year heat-map browser. It holds an immutable snapshot of the
// habit store; navigation only moves the cursor and switches years.
type Model struct {
	state    models.HabitState
	names    map[string]string
	year     int
	today    string
	cells    []stats.HeatmapCell
	selected int
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

func NewModel(state models.HabitState, year int, today string) Model {
	names := make(map[string]string, len(state.Tasks))
	for _, t := range state.Tasks {
		names[t.ID] = t.Name
	}

	m := Model{
		state: state,
		names: names,
		year:  year,
		today: today,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.rebuild()
	m.selectDay(today)
	return m
}

// rebuild recomputes the heat-map cells for the current year.
func (m *Model) rebuild() {
	m.cells = stats.BuildYearHeatmap(m.year, m.state.Tasks, m.state.Logs)
	if m.selected >= len(m.cells) {
		m.selected = len(m.cells) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// selectDay moves the cursor to the given date when it falls in the current
// year; otherwise the cursor stays put.
func (m *Model) selectDay(date string) {
	for i, cell := range m.cells {
		if cell.Date == date {
			m.selected = i
			return
		}
	}
}

func (m Model) selectedCell() stats.HeatmapCell {
	return m.cells[m.selected]
}

func (m Model) Init() tea.Cmd {
	return nil
}

// moveSelection shifts the cursor by delta days, clamped to the year.
func (m *Model) moveSelection(delta int) {
	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.cells) {
		next = len(m.cells) - 1
	}
	m.selected = next
}

// switchYear rebuilds for an adjacent year, keeping the same month and day
// where the target year has it.
func (m *Model) switchYear(delta int) {
	date := m.cells[m.selected].Date
	m.year += delta
	m.rebuild()

	t, err := dateutil.ParseDay(date, time.UTC)
	if err != nil {
		return
	}
	day := t.Day()
	if max := dateutil.DaysInMonth(m.year, t.Month()); day > max {
		day = max
	}
	m.selectDay(dateutil.MonthDay(m.year, t.Month(), day))
}
