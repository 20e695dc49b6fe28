package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/stats"
	"github.com/habitline/habitline/internal/tui"
)

type HeatmapCmd struct {
	Year int  `help:"Year to render. Defaults to the current year."`
	Tui  bool `help:"Browse the heat-map interactively."`
}

func (c *HeatmapCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}

	year := c.Year
	if year == 0 {
		t, err := dateutil.ParseDay(ctx.Today, time.UTC)
		if err != nil {
			return err
		}
		year = t.Year()
	}

	if c.Tui {
		p := tea.NewProgram(tui.NewModel(state, year, ctx.Today), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("heat-map browser failed: %w", err)
		}
		return nil
	}

	cells := stats.BuildYearHeatmap(year, state.Tasks, state.Logs)
	fmt.Println(renderYear(year, cells))
	return nil
}

// renderYear prints the heat-map one month per row, days colored by
// completion count.
func renderYear(year int, cells []stats.HeatmapCell) string {
	byMonth := make(map[time.Month][]stats.HeatmapCell)
	for _, cell := range cells {
		t, err := dateutil.ParseDay(cell.Date, time.UTC)
		if err != nil {
			continue
		}
		byMonth[t.Month()] = append(byMonth[t.Month()], cell)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d\n", year))
	for month := time.January; month <= time.December; month++ {
		b.WriteString(fmt.Sprintf("%-4s", month.String()[:3]))
		for _, cell := range byMonth[month] {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(cell.Color))
			b.WriteString(style.Render("■"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nLess ")
	for _, count := range []int{0, 1, 3, 5} {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(stats.HeatColor(count)))
		b.WriteString(style.Render("■"))
	}
	b.WriteString(" More")
	return b.String()
}
