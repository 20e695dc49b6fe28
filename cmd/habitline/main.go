package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/habitline/habitline/internal/cli"
	"github.com/habitline/habitline/internal/constants"
	"github.com/habitline/habitline/internal/dateutil"
	apperrors "github.com/habitline/habitline/internal/errors"
	"github.com/habitline/habitline/internal/logger"
	"github.com/habitline/habitline/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store file path." type:"path" default:"~/.config/habitline/habitline.db"`
	Timezone string `help:"IANA timezone for day attribution. Defaults to the system timezone."`
	Debug    bool   `help:"Enable debug logging."`

	Init         cli.InitCmd         `cmd:"" help:"Initialize habitline storage."`
	Streak       cli.StreakCmd       `cmd:"" help:"Show current streaks." default:"1"`
	Achievements cli.AchievementsCmd `cmd:"" help:"Show achievement progress."`
	Stats        cli.StatsCmd        `cmd:"" help:"Show completion statistics."`
	Heatmap      cli.HeatmapCmd      `cmd:"" help:"Render the year heat-map."`
	Validate     cli.ValidateCmd     `cmd:"" help:"Check the store for conflicts."`
	Doctor       cli.DoctorCmd       `cmd:"" help:"Run health diagnostics."`
	Task         struct {
		Add    cli.TaskAddCmd    `cmd:"" help:"Add a new task."`
		Edit   cli.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Delete cli.TaskDeleteCmd `cmd:"" help:"Delete a task and its logs."`
		List   cli.TaskListCmd   `cmd:"" help:"List all tasks."`
	} `cmd:"" help:"Manage tasks."`
	Log struct {
		Add    cli.LogAddCmd    `cmd:"" help:"Log a completion."`
		Remove cli.LogRemoveCmd `cmd:"" help:"Remove a completion."`
		List   cli.LogListCmd   `cmd:"" help:"List recent completions."`
	} `cmd:"" help:"Manage completion logs."`
	Trace struct {
		Add        cli.TraceAddCmd        `cmd:"" help:"Add a tracker task."`
		Complete   cli.TraceCompleteCmd   `cmd:"" help:"Complete a tracker task for today."`
		Uncomplete cli.TraceUncompleteCmd `cmd:"" help:"Undo today's completion."`
		Skip       cli.TraceSkipCmd       `cmd:"" help:"Mark a task deliberately skipped today."`
		Backfill   cli.TraceBackfillCmd   `cmd:"" help:"Change a past day's completion."`
		Status     cli.TraceStatusCmd     `cmd:"" help:"Show today's tracker status."`
	} `cmd:"" help:"Day-record tracker with cached streaks."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker with streaks, achievements, and heat-maps"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	loc, err := dateutil.LoadLocation(CLI.Timezone)
	if err != nil {
		apperrors.Fatalf("invalid timezone %q: %v", CLI.Timezone, err)
	}

	var kv storage.KV
	if strings.HasSuffix(CLI.Config, ".json") {
		kv = storage.NewJSONStore(CLI.Config)
	} else {
		kv = storage.NewSQLiteStore(CLI.Config)
	}
	defer kv.Close()

	appCtx := &cli.Context{
		Store: storage.NewTrackerStore(kv),
		KV:    kv,
		Today: dateutil.Today(loc),
	}

	if err := ctx.Run(appCtx); err != nil {
		kv.Close()
		apperrors.Fatal(err)
	}
}
