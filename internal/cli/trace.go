package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/habitline/habitline/internal/models"
	"github.com/habitline/habitline/internal/streak"
)

type TraceAddCmd struct {
	Name string `arg:"" help:"Task name."`
	Type string `short:"t" help:"Task type (check|check_text|number|violation)." default:"check"`
}

func (c *TraceAddCmd) Run(ctx *Context) error {
	taskType, err := parseTaskType(c.Type)
	if err != nil {
		return err
	}

	state, err := ctx.Store.LoadTrace(ctx.Today)
	if err != nil {
		return err
	}
	state.Tasks = append(state.Tasks, models.TraceTask{
		ID:          uuid.New().String(),
		Name:        c.Name,
		Type:        taskType,
		DayStatus:   models.TraceDayPending,
		CreatedDate: ctx.Today,
	})

	if err := ctx.Store.SaveTrace(state); err != nil {
		return err
	}
	fmt.Printf("Added tracker task: %s\n", c.Name)
	return nil
}

type TraceCompleteCmd struct {
	Task   string `arg:"" help:"Task ID or name."`
	Value  string `short:"v" help:"Numeric value for number tasks."`
	Text   string `short:"t" help:"Note text."`
	Rating int    `short:"r" help:"Rating 1-5."`
}

func (c *TraceCompleteCmd) Run(ctx *Context) error {
	if c.Rating != 0 && (c.Rating < 1 || c.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	state, err := ctx.Store.LoadTrace(ctx.Today)
	if err != nil {
		return err
	}
	task, err := findTraceTask(state.Tasks, c.Task)
	if err != nil {
		return err
	}

	record := models.TraceTaskRecord{
		TaskID:      task.ID,
		Completed:   true,
		Text:        c.Text,
		Rating:      c.Rating,
		CompletedAt: time.Now().Format(time.RFC3339),
	}
	if c.Value != "" {
		v, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", c.Value, err)
		}
		record.Value = &v
	}

	tracker := streak.NewTracker(&state)
	if !tracker.Complete(task.ID, ctx.Today, record) {
		fmt.Printf("%s is already completed today.\n", task.Name)
		return nil
	}

	if err := ctx.Store.SaveTrace(state); err != nil {
		return err
	}

	updated, _ := findTraceTask(state.Tasks, task.ID)
	fmt.Printf("Completed %s. Streak: %d (best %d)\n", task.Name, updated.Streak, updated.BestStreak)
	return nil
}

type TraceUncompleteCmd struct {
	Task string `arg:"" help:"Task ID or name."`
}

func (c *TraceUncompleteCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadTrace(ctx.Today)
	if err != nil {
		return err
	}
	task, err := findTraceTask(state.Tasks, c.Task)
	if err != nil {
		return err
	}

	tracker := streak.NewTracker(&state)
	if !tracker.Uncomplete(task.ID, ctx.Today) {
		fmt.Printf("%s is not completed today.\n", task.Name)
		return nil
	}

	if err := ctx.Store.SaveTrace(state); err != nil {
		return err
	}

	updated, _ := findTraceTask(state.Tasks, task.ID)
	fmt.Printf("Uncompleted %s. Streak: %d\n", task.Name, updated.Streak)
	return nil
}

type TraceSkipCmd struct {
	Task string `arg:"" help:"Task ID or name."`
}

func (c *TraceSkipCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadTrace(ctx.Today)
	if err != nil {
		return err
	}
	task, err := findTraceTask(state.Tasks, c.Task)
	if err != nil {
		return err
	}

	tracker := streak.NewTracker(&state)
	if !tracker.Skip(task.ID, ctx.Today) {
		fmt.Printf("%s cannot be skipped (already completed or skipped today).\n", task.Name)
		return nil
	}

	if err := ctx.Store.SaveTrace(state); err != nil {
		return err
	}
	fmt.Printf("Skipped %s for today.\n", task.Name)
	return nil
}

type TraceBackfillCmd struct {
	Task   string `arg:"" help:"Task ID or name."`
	Date   string `arg:"" help:"Day to change (YYYY-MM-DD)."`
	Remove bool   `help:"Mark the day incomplete instead of complete."`
}

func (c *TraceBackfillCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadTrace(ctx.Today)
	if err != nil {
		return err
	}
	task, err := findTraceTask(state.Tasks, c.Task)
	if err != nil {
		return err
	}

	tracker := streak.NewTracker(&state)
	if err := tracker.Backfill(task.ID, c.Date, ctx.Today, !c.Remove); err != nil {
		return err
	}

	if err := ctx.Store.SaveTrace(state); err != nil {
		return err
	}

	updated, _ := findTraceTask(state.Tasks, task.ID)
	verb := "Backfilled"
	if c.Remove {
		verb = "Cleared"
	}
	fmt.Printf("%s %s on %s. Streak: %d (best %d)\n", verb, task.Name, c.Date, updated.Streak, updated.BestStreak)
	return nil
}

type TraceStatusCmd struct{}

func (c *TraceStatusCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadTrace(ctx.Today)
	if err != nil {
		return err
	}

	fmt.Printf("%s · overall streak %d day(s)\n\n", ctx.Today, state.User.Streak)
	if len(state.Tasks) == 0 {
		fmt.Println("No tracker tasks. Add one with 'habitline trace add'.")
		return nil
	}

	for _, task := range state.Tasks {
		marker := "○"
		switch task.DayStatus {
		case models.TraceDayDone:
			marker = "●"
		case models.TraceDaySkipped:
			marker = "–"
		}
		fmt.Printf("  %s %s · streak %d (best %d)\n", marker, task.Name, task.Streak, task.BestStreak)
	}
	return nil
}
