package cli

import (
	"fmt"
	"time"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/stats"
)

type StatsCmd struct {
	Period string `short:"p" help:"Comparison window (week|month|year)." default:"week"`
	Year   int    `help:"Year for the year summary. Defaults to the current year."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}

	switch c.Period {
	case "week", "month":
		cmp := stats.ComparePeriod(state.Tasks, state.Logs, ctx.Today, stats.Period(c.Period))
		fmt.Printf("This %s: %d completions\n", cmp.Period, cmp.Current)
		fmt.Printf("Last %s: %d completions\n", cmp.Period, cmp.Previous)
		fmt.Printf("Trend: %s\n", trendArrow(cmp.Trend))
		return nil

	case "year":
		year := c.Year
		if year == 0 {
			t, err := dateutil.ParseDay(ctx.Today, time.UTC)
			if err != nil {
				return err
			}
			year = t.Year()
		}

		summary := stats.SummarizeYear(year, state.Tasks, state.Logs)
		fmt.Printf("%d at a glance:\n", summary.Year)
		fmt.Printf("  Completions:  %d\n", summary.Total)
		fmt.Printf("  Active days:  %d\n", summary.ActiveDays)
		fmt.Printf("  Perfect days: %d\n", summary.PerfectDays)
		if summary.BestDay != "" {
			fmt.Printf("  Best day:     %s (%d)\n", summary.BestDay, summary.BestDayN)
		}

		ids := make([]string, len(state.Tasks))
		for i, t := range state.Tasks {
			ids[i] = t.ID
		}
		fmt.Println("\nMonthly completions:")
		for _, point := range stats.MonthlyTrend(year, ids, state.Logs) {
			total := 0
			for _, n := range point.Counts {
				total += n
			}
			fmt.Printf("  %s  %d\n", point.Month, total)
		}
		return nil

	default:
		return fmt.Errorf("invalid period: %s (week|month|year)", c.Period)
	}
}

func trendArrow(t stats.Trend) string {
	switch t {
	case stats.TrendUp:
		return "up ↑"
	case stats.TrendDown:
		return "down ↓"
	default:
		return "flat →"
	}
}
