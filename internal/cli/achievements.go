package cli

import (
	"fmt"
	"time"

	"github.com/habitline/habitline/internal/achievements"
	"github.com/habitline/habitline/internal/dateutil"
)

type AchievementsCmd struct {
	Year int  `help:"Catalog year for monthly achievements. Defaults to the current year."`
	All  bool `short:"a" help:"Show locked achievements too."`
}

func (c *AchievementsCmd) Run(ctx *Context) error {
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

	statuses := achievements.Evaluate(achievements.Catalog(year), state.Logs, state.Tasks, ctx.Today)

	unlocked := 0
	for _, s := range statuses {
		if s.Unlocked {
			unlocked++
		}
	}
	fmt.Printf("Achievements: %d/%d unlocked\n\n", unlocked, len(statuses))

	for _, s := range statuses {
		if !s.Unlocked && !c.All {
			continue
		}

		marker := " "
		if s.Unlocked {
			marker = "✓"
		}
		line := fmt.Sprintf("  %s %s %s", marker, s.Icon, s.Name)
		if s.ProgressMax > 0 {
			progress := s.Progress
			if progress > s.ProgressMax {
				progress = s.ProgressMax
			}
			line += fmt.Sprintf("  [%d/%d]", progress, s.ProgressMax)
		}
		if s.Unlocked && s.UnlockedDate != "" {
			line += "  " + s.UnlockedDate
		}
		fmt.Println(line)
		if c.All {
			fmt.Printf("      %s\n", s.Description)
		}
	}
	return nil
}
