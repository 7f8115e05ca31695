package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/timetable/internal/cli"
	"github.com/julianstephens/timetable/internal/config"
	"github.com/julianstephens/timetable/internal/constants"
	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." default:"${config_path}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Write the config file and initialize storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive timetable." default:"1"`
	Show     cli.ShowCmd     `cmd:"" help:"Print the timetable grid."`
	Add      cli.AddCmd      `cmd:"" help:"Add an event, optionally repeating."`
	List     cli.ListCmd     `cmd:"" help:"List events."`
	Move     cli.MoveCmd     `cmd:"" help:"Move an event to another cell of its week."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit an event or its group."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete an event or its group."`
	Export   cli.ExportCmd   `cmd:"" help:"Export events as CSV."`
	Import   cli.ImportCmd   `cmd:"" help:"Import events from CSV."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage backups of the event store."`
	Validate cli.ValidateCmd `cmd:"" help:"Check the timetable configuration."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks."`
	Inspect  cli.InspectCmd  `cmd:"" help:"Print internal state as JSON."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Day, week and month timetable for the terminal"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	rt, err := config.Load(CLI.Config)
	if err != nil {
		apperr.Fatal(err)
	}
	rt.Debug = rt.Debug || CLI.Debug

	if err := logger.Init(logger.Config{Debug: rt.Debug, LogDir: rt.LogDir}); err != nil {
		apperr.Fatal(err)
	}
	defer logger.Close()
	logger.Debug("Starting", "command", ctx.Command(), "config", rt.ConfigFile, "store", rt.DBPath)

	store := storage.New(rt.DBPath)
	defer store.Close()

	if err := ctx.Run(cli.NewContext(rt, store)); err != nil {
		store.Close()
		apperr.Fatal(err)
	}
}
