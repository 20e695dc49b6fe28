package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/stats"
)

const cellGlyph = "■ "

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("habitline · %d", m.year)),
		m.viewGrid(),
		m.viewDetail(),
		m.viewLegend(),
		m.help.View(m.keys),
	)
	return ui
}

// viewGrid renders the year as a week-per-column grid, Monday first.
func (m Model) viewGrid() string {
	offset := m.weekOffset()
	weeks := (len(m.cells) + offset + 6) / 7

	var b strings.Builder
	b.WriteString(m.viewMonthLabels(offset, weeks))
	b.WriteString("\n")

	labels := []string{"Mon", "", "Wed", "", "Fri", "", ""}
	for row := 0; row < 7; row++ {
		b.WriteString(weekdayLabelStyle.Render(labels[row]))
		for week := 0; week < weeks; week++ {
			idx := week*7 + row - offset
			if idx < 0 || idx >= len(m.cells) {
				b.WriteString("  ")
				continue
			}
			cell := m.cells[idx]
			if idx == m.selected {
				b.WriteString(selectedCellStyle.Render(cellGlyph))
			} else {
				b.WriteString(cellStyle(cell.Color).Render(cellGlyph))
			}
		}
		if row < 6 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// viewMonthLabels places a month abbreviation above the first week column
// that starts the month.
func (m Model) viewMonthLabels(offset, weeks int) string {
	row := make([]byte, weeks*2)
	for i := range row {
		row[i] = ' '
	}

	lastMonth := time.Month(0)
	for week := 0; week < weeks; week++ {
		idx := week * 7
		if idx < offset {
			idx = 0
		} else {
			idx -= offset
		}
		if idx >= len(m.cells) {
			break
		}
		t, err := dateutil.ParseDay(m.cells[idx].Date, time.UTC)
		if err != nil {
			continue
		}
		if t.Month() != lastMonth {
			lastMonth = t.Month()
			label := t.Month().String()[:3]
			copy(row[week*2:], label)
		}
	}
	return strings.Repeat(" ", 4) + monthLabelStyle.Render(string(row))
}

// weekOffset is the row of January 1st in a Monday-first column.
func (m Model) weekOffset() int {
	if len(m.cells) == 0 {
		return 0
	}
	t, err := dateutil.ParseDay(m.cells[0].Date, time.UTC)
	if err != nil {
		return 0
	}
	return (int(t.Weekday()) + 6) % 7
}

func (m Model) viewDetail() string {
	cell := m.selectedCell()

	parts := []string{cell.Date, fmt.Sprintf("%d completed", cell.Count)}
	if cell.Perfect {
		parts = append(parts, perfectStyle.Render("perfect day"))
	}
	if cell.Violation {
		parts = append(parts, violationStyle.Render("violation"))
	}
	if len(cell.TaskIDs) > 0 {
		names := make([]string, 0, len(cell.TaskIDs))
		for _, id := range cell.TaskIDs {
			if name, ok := m.names[id]; ok {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			parts = append(parts, strings.Join(names, ", "))
		}
	}
	return detailStyle.Render(strings.Join(parts, " · "))
}

func (m Model) viewLegend() string {
	var b strings.Builder
	b.WriteString("Less ")
	for _, count := range []int{0, 1, 3, 5} {
		b.WriteString(cellStyle(stats.HeatColor(count)).Render(cellGlyph))
	}
	b.WriteString("More")
	return legendStyle.Render(b.String())
}
