package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
	"github.com/habitline/habitline/internal/streak"
)

type TaskAddCmd struct {
	Name  string `arg:"" help:"Task name."`
	Type  string `short:"t" help:"Task type (check|check_text|number|violation)." default:"check"`
	Start string `short:"s" help:"First day the task is due (YYYY-MM-DD). Defaults to today."`
	End   string `short:"e" help:"Last day the task is due (YYYY-MM-DD)."`
	Unit  string `short:"u" help:"Unit label for number tasks."`
	Color string `help:"Display color (hex)."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	taskType, err := parseTaskType(c.Type)
	if err != nil {
		return err
	}

	start := c.Start
	if start == "" {
		start = ctx.Today
	}
	if !dateutil.IsValidDay(start) {
		return fmt.Errorf("invalid start date: %s", c.Start)
	}
	if c.End != "" {
		if !dateutil.IsValidDay(c.End) {
			return fmt.Errorf("invalid end date: %s", c.End)
		}
		if c.End < start {
			return fmt.Errorf("end date %s is before start date %s", c.End, start)
		}
	}

	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}

	task := models.Task{
		ID:        uuid.New().String(),
		Name:      c.Name,
		Type:      taskType,
		Status:    models.TaskStatusActive,
		StartDate: start,
		EndDate:   c.End,
		Unit:      c.Unit,
		Color:     c.Color,
	}
	state.Tasks = append(state.Tasks, task)

	if err := ctx.Store.SaveHabits(state); err != nil {
		return err
	}
	fmt.Printf("Added task: %s (ID: %s)\n", c.Name, task.ID)
	return nil
}

type TaskEditCmd struct {
	Task   string `arg:"" help:"Task ID or name."`
	Name   string `help:"New name."`
	Status string `help:"New status (active|paused|ended)."`
	End    string `help:"New end date (YYYY-MM-DD)."`
	Unit   string `help:"New unit label."`
	Color  string `help:"New display color."`
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}
	task, err := findTask(state.Tasks, c.Task)
	if err != nil {
		return err
	}

	for i := range state.Tasks {
		if state.Tasks[i].ID != task.ID {
			continue
		}
		if c.Name != "" {
			state.Tasks[i].Name = c.Name
		}
		if c.Status != "" {
			status, err := parseTaskStatus(c.Status)
			if err != nil {
				return err
			}
			state.Tasks[i].Status = status
		}
		if c.End != "" {
			if !dateutil.IsValidDay(c.End) {
				return fmt.Errorf("invalid end date: %s", c.End)
			}
			if c.End < state.Tasks[i].StartDate {
				return fmt.Errorf("end date %s is before start date %s", c.End, state.Tasks[i].StartDate)
			}
			state.Tasks[i].EndDate = c.End
		}
		if c.Unit != "" {
			state.Tasks[i].Unit = c.Unit
		}
		if c.Color != "" {
			state.Tasks[i].Color = c.Color
		}
	}

	if err := ctx.Store.SaveHabits(state); err != nil {
		return err
	}
	fmt.Printf("Updated task: %s\n", task.Name)
	return nil
}

type TaskDeleteCmd struct {
	Task  string `arg:"" help:"Task ID or name."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}
	task, err := findTask(state.Tasks, c.Task)
	if err != nil {
		return err
	}

	logCount := 0
	for _, l := range state.Logs {
		if l.TaskID == task.ID {
			logCount++
		}
	}

	if !c.Force {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q and its %d logs?", task.Name, logCount)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	tasks := state.Tasks[:0]
	for _, t := range state.Tasks {
		if t.ID != task.ID {
			tasks = append(tasks, t)
		}
	}
	state.Tasks = tasks

	logs := state.Logs[:0]
	for _, l := range state.Logs {
		if l.TaskID != task.ID {
			logs = append(logs, l)
		}
	}
	state.Logs = logs

	if err := ctx.Store.SaveHabits(state); err != nil {
		return err
	}
	fmt.Printf("Deleted task %q and %d logs.\n", task.Name, logCount)
	return nil
}

type TaskListCmd struct {
	ActiveOnly bool `help:"Show only tasks due today."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}
	if len(state.Tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println("Tasks:")
	for _, task := range state.Tasks {
		if c.ActiveOnly && (!task.ActiveOn(ctx.Today) || task.Status != models.TaskStatusActive) {
			continue
		}

		window := task.StartDate
		if task.EndDate != "" {
			window += " to " + task.EndDate
		} else {
			window += " onward"
		}

		current := streak.TaskStreakAt(state.Logs, task.ID, ctx.Today)
		if current == 0 {
			current = streak.TaskStreakAt(state.Logs, task.ID, dateutil.Yesterday(ctx.Today))
		}

		fmt.Printf("  [%s] %s - %s (%s, streak %d)\n",
			task.Status, task.Name, task.Type, window, current)
		if task.Unit != "" {
			fmt.Printf("      Unit: %s\n", task.Unit)
		}
	}
	return nil
}
