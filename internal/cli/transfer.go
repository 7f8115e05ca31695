package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/timetable/internal/backup"
	"github.com/julianstephens/timetable/internal/logger"
)

type ExportCmd struct {
	File string `arg:"" help:"CSV file to write, '-' for stdout." default:"-"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	events, err := ctx.loadEvents()
	if err != nil {
		return err
	}
	codec, err := eventCodec()
	if err != nil {
		return err
	}

	var w io.Writer = ctx.Out
	if c.File != "-" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.File, err)
		}
		defer f.Close()
		w = f
	}

	if err := codec.Export(w, events); err != nil {
		return err
	}
	if c.File != "-" {
		ctx.printf("✓ Exported %d event(s) to %s\n", len(events), c.File)
	}
	return nil
}

type ImportCmd struct {
	File     string `arg:"" help:"CSV file to read, '-' for stdin." type:"path"`
	NoBackup bool   `help:"Skip the backup taken before importing."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	codec, err := eventCodec()
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", c.File, err)
		}
		defer f.Close()
		r = f
	}

	events, rowErr := codec.Import(r)
	if events == nil && rowErr != nil {
		return rowErr
	}
	if len(events) == 0 {
		ctx.println("Nothing to import.")
		return rowErr
	}

	if !c.NoBackup {
		if path, err := backup.NewManager(ctx.Store.GetConfigPath()).Create(); err != nil {
			logger.Warn("Backup before import failed", "error", err)
		} else {
			ctx.printf("Backup created: %s\n", path)
		}
	}

	if err := ctx.Store.SaveEvents(events...); err != nil {
		return err
	}
	ctx.printf("✓ Imported %d event(s)\n", len(events))
	if rowErr != nil {
		ctx.println("Some rows were skipped:")
		for _, err := range unwrapAll(rowErr) {
			ctx.printf("  %v\n", err)
		}
	}
	return nil
}

func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
