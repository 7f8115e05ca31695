package cli

import (
	"os"

	"github.com/julianstephens/timetable/internal/config"
)

type InitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

func (c *InitCmd) Run(ctx *Context) error {
	path := ctx.Runtime.ConfigFile
	if _, err := os.Stat(path); os.IsNotExist(err) || c.Force {
		if err := config.Save(path, ctx.Runtime); err != nil {
			return err
		}
		ctx.printf("Wrote config to: %s\n", path)
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized timetable storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
