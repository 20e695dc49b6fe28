package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/habitline/habitline/internal/backup"
	"github.com/habitline/habitline/internal/constants"
	"github.com/habitline/habitline/internal/migration"
	"github.com/habitline/habitline/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	if err := checkSchemaCurrent(ctx); err != nil {
		fmt.Printf("⚠ Schema version: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Schema version: OK\n")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	if storeReachable {
		if err := checkValidation(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (store not reachable)\n")
	}

	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	if err := checkSingleInstance(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if _, err := ctx.Store.LoadHabits(); err != nil {
		return fmt.Errorf("failed to load habit store: %w", err)
	}
	if _, err := ctx.Store.LoadTrace(ctx.Today); err != nil {
		return fmt.Errorf("failed to load tracker store: %w", err)
	}
	return nil
}

// checkSchemaCurrent inspects the raw trace blob without rewriting it. After a
// successful load the blob is canonical, so anything else means the load path
// is not persisting its migrations.
func checkSchemaCurrent(ctx *Context) error {
	raw, found, err := ctx.KV.Get(constants.TraceStoreKey)
	if err != nil {
		return fmt.Errorf("failed to read tracker blob: %w", err)
	}
	if !found {
		return nil
	}

	res := migration.DetectAndMigrate([]byte(raw))
	if res.Migrated {
		return fmt.Errorf("tracker store is at schema %s and would be migrated on next load", res.Detected)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitline backup create'")
	}
	return nil
}

func checkValidation(ctx *Context) error {
	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}

	result := validation.New().ValidateState(state, ctx.Today)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s):\n%s", len(result.Conflicts), result.FormatReport())
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}
	return nil
}

// checkSingleInstance warns when another habitline process is running.
// Concurrent writers can clobber each other's saves on the JSON backend.
func checkSingleInstance() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			return fmt.Errorf("another %s process is running (pid %d)", constants.AppName, p.Pid())
		}
	}
	return nil
}
