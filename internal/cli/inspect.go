package cli

import (
	"encoding/json"
	"fmt"
)

type InspectCmd struct {
	DBPath InspectDBPathCmd `cmd:"" name:"db-path" help:"Show store path."`
	Event  InspectEventCmd  `cmd:"" help:"Dump an event as JSON."`
	Config InspectConfigCmd `cmd:"" help:"Show the effective configuration."`
}

type InspectDBPathCmd struct{}

func (cmd *InspectDBPathCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type InspectEventCmd struct {
	ID string `arg:"" help:"Event id or unique id prefix."`
}

func (cmd *InspectEventCmd) Run(ctx *Context) error {
	events, err := ctx.loadEvents()
	if err != nil {
		return err
	}
	e, err := findEvent(events, cmd.ID)
	if err != nil {
		return err
	}
	return ctx.printJSON(e)
}

type InspectConfigCmd struct{}

func (cmd *InspectConfigCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]any{
		"config_file": ctx.Runtime.ConfigFile,
		"db_path":     ctx.Runtime.DBPath,
		"log_dir":     ctx.Runtime.LogDir,
		"debug":       ctx.Runtime.Debug,
		"timetable":   ctx.Runtime.Timetable,
	})
}

func (c *Context) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(data))
	return nil
}
