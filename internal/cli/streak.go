package cli

import (
	"fmt"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
	"github.com/habitline/habitline/internal/streak"
)

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}

	overall := streak.Overall(state.Tasks, state.Logs, ctx.Today)
	fmt.Printf("Overall streak: %d day(s)\n\n", overall)

	if len(state.Tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	yesterday := dateutil.Yesterday(ctx.Today)
	for _, task := range state.Tasks {
		if task.Type == models.TaskTypeViolation {
			continue
		}
		current := streak.TaskStreakAt(state.Logs, task.ID, ctx.Today)
		pendingToday := false
		if current == 0 {
			current = streak.TaskStreakAt(state.Logs, task.ID, yesterday)
			pendingToday = current > 0
		}

		suffix := ""
		if pendingToday {
			suffix = " (not yet logged today)"
		}
		fmt.Printf("  %s: %d day(s)%s\n", task.Name, current, suffix)
	}
	return nil
}
