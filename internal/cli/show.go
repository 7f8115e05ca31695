package cli

import (
	"time"

	"github.com/julianstephens/timetable/internal/manager"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/render"
	"github.com/julianstephens/timetable/internal/utils"
)

type ShowCmd struct {
	Date  string `short:"d" help:"Date to show (YYYY-MM-DD), defaults to today."`
	Type  string `short:"t" help:"Display type (day|week|month), defaults to the configured one."`
	Width int    `short:"w" help:"Width to fit the grid into, 0 for fixed-width columns." default:"0"`
}

func (c *ShowCmd) Run(ctx *Context) error {
	events, err := ctx.loadEvents()
	if err != nil {
		return err
	}

	var opts []manager.Option[models.Event]
	if c.Type != "" {
		dt, err := models.ParseDisplayType(c.Type)
		if err != nil {
			return err
		}
		opts = append(opts, manager.WithDisplayType[models.Event](dt))
	}
	mgr, err := ctx.manager(opts...)
	if err != nil {
		return err
	}
	if c.Date != "" {
		date, err := utils.ParseDate(c.Date, time.Local)
		if err != nil {
			return err
		}
		mgr.SetDate(date)
	}

	g, err := mgr.Refresh(events)
	if err != nil {
		return err
	}
	ctx.println(render.GridWidth(g, mgr.Config(), c.Width))
	return nil
}
