package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/timetable/internal/backup"
	"github.com/julianstephens/timetable/internal/storage"
	"github.com/julianstephens/timetable/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*Context) error
	warning bool
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	checks := []check{
		{name: "Configuration", run: checkConfig},
		{name: "Store reachable", run: checkStoreReachable},
		{name: "Schema version", run: checkSchemaVersion},
		{name: "Event data", run: checkEvents},
		{name: "Log directory", run: checkLogDir},
		{name: "Backups present", run: checkBackupsPresent, warning: true},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	failed := false
	for _, c := range checks {
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", c.name)
		case c.warning:
			ctx.printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed = true
		}
	}

	ctx.println()
	if failed {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkConfig(ctx *Context) error {
	result := validation.ValidateConfig(ctx.Runtime.Timetable)
	return result.Err()
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	store, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return nil
	}
	current, latest, err := store.SchemaVersion(context.Background())
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema version %d, latest is %d", current, latest)
	}
	return nil
}

func checkEvents(ctx *Context) error {
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}
	for _, e := range events {
		if e.DateTo.Before(e.DateFrom) {
			return fmt.Errorf("event %s ends before it starts", shortID(e.ID))
		}
	}
	return nil
}

func checkLogDir(ctx *Context) error {
	dir := ctx.Runtime.LogDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("log directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	return os.Remove(filepath.Clean(probe.Name()))
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'timetable backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
