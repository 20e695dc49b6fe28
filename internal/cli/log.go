package cli

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
)

type LogAddCmd struct {
	Task   string `arg:"" help:"Task ID or name."`
	Date   string `short:"d" help:"Day to log (YYYY-MM-DD). Defaults to today."`
	Value  string `short:"v" help:"Numeric value, required for number tasks."`
	Text   string `short:"t" help:"Note text."`
	Rating int    `short:"r" help:"Rating 1-5."`
}

func (c *LogAddCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = ctx.Today
	}
	if !dateutil.IsValidDay(date) {
		return fmt.Errorf("invalid date: %s", c.Date)
	}
	if date > ctx.Today {
		return fmt.Errorf("cannot log a future day: %s", date)
	}
	if c.Rating != 0 && (c.Rating < 1 || c.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}
	task, err := findTask(state.Tasks, c.Task)
	if err != nil {
		return err
	}

	var value *float64
	if c.Value != "" {
		v, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", c.Value, err)
		}
		value = &v
	}
	if task.Type == models.TaskTypeNumber && value == nil {
		return fmt.Errorf("task %q requires a value (-v)", task.Name)
	}

	for _, l := range state.Logs {
		if l.TaskID == task.ID && l.Date == date {
			return fmt.Errorf("%q is already logged on %s; remove it first with 'habitline log remove'", task.Name, date)
		}
	}

	state.Logs = append(state.Logs, models.Log{
		ID:     uuid.New().String(),
		TaskID: task.ID,
		Date:   date,
		Value:  value,
		Text:   c.Text,
		Rating: c.Rating,
	})

	if err := ctx.Store.SaveHabits(state); err != nil {
		return err
	}
	fmt.Printf("Logged %s on %s\n", task.Name, date)
	return nil
}

type LogRemoveCmd struct {
	Task string `arg:"" help:"Task ID or name."`
	Date string `short:"d" help:"Day to unlog (YYYY-MM-DD). Defaults to today."`
}

func (c *LogRemoveCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = ctx.Today
	}
	if !dateutil.IsValidDay(date) {
		return fmt.Errorf("invalid date: %s", c.Date)
	}

	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}
	task, err := findTask(state.Tasks, c.Task)
	if err != nil {
		return err
	}

	removed := false
	logs := state.Logs[:0]
	for _, l := range state.Logs {
		if l.TaskID == task.ID && l.Date == date {
			removed = true
			continue
		}
		logs = append(logs, l)
	}
	if !removed {
		return fmt.Errorf("no log for %q on %s", task.Name, date)
	}
	state.Logs = logs

	if err := ctx.Store.SaveHabits(state); err != nil {
		return err
	}
	fmt.Printf("Removed log for %s on %s\n", task.Name, date)
	return nil
}

type LogListCmd struct {
	Task string `short:"t" help:"Limit to one task (ID or name)."`
	Days int    `short:"n" help:"How many days back to show." default:"14"`
}

func (c *LogListCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}

	filterID := ""
	if c.Task != "" {
		task, err := findTask(state.Tasks, c.Task)
		if err != nil {
			return err
		}
		filterID = task.ID
	}

	names := make(map[string]string, len(state.Tasks))
	for _, t := range state.Tasks {
		names[t.ID] = t.Name
	}

	from := dateutil.AddDays(ctx.Today, -(c.Days - 1))
	shown := 0
	for _, l := range state.Logs {
		if filterID != "" && l.TaskID != filterID {
			continue
		}
		if l.Date < from || l.Date > ctx.Today {
			continue
		}
		name, known := names[l.TaskID]
		if !known {
			continue
		}

		line := fmt.Sprintf("  %s  %s", l.Date, name)
		if l.Value != nil {
			line += fmt.Sprintf("  %g", *l.Value)
		}
		if l.Rating != 0 {
			line += fmt.Sprintf("  (%d/5)", l.Rating)
		}
		if l.Text != "" {
			line += "  " + l.Text
		}
		fmt.Println(line)
		shown++
	}
	if shown == 0 {
		fmt.Println("No logs in range.")
	}
	return nil
}
