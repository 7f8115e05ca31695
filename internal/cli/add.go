package cli

import (
	"time"

	"github.com/julianstephens/timetable/internal/event"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

type AddCmd struct {
	Title    string `arg:"" help:"Event title."`
	From     string `short:"f" help:"Start (YYYY-MM-DD HH:MM)." required:""`
	To       string `short:"t" help:"End (YYYY-MM-DD HH:MM)." required:""`
	Repeat   string `short:"r" help:"Repeat (once|daily|weekly|monthly|custom)." default:"once"`
	Until    string `short:"u" help:"Last day of the recurrence (YYYY-MM-DD)."`
	Every    int    `short:"e" help:"Interval in days for custom recurrence." default:"1"`
	Location string `short:"l" help:"Location."`
	Notes    string `short:"n" help:"Notes."`
}

func (c *AddCmd) Run(ctx *Context) error {
	repeat, err := models.ParseRepeatability(c.Repeat)
	if err != nil {
		return err
	}
	from, err := utils.ParseDateTime(c.From, time.Local)
	if err != nil {
		return err
	}
	to, err := utils.ParseDateTime(c.To, time.Local)
	if err != nil {
		return err
	}
	if err := checkRange(from, to); err != nil {
		return err
	}
	var until time.Time
	if c.Until != "" {
		if until, err = utils.ParseDate(c.Until, time.Local); err != nil {
			return err
		}
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	mgr, err := ctx.manager()
	if err != nil {
		return err
	}

	e := &models.Event{Title: c.Title, DateFrom: from, DateTo: to, Location: c.Location, Notes: c.Notes}
	created, err := mgr.CreateEvents(event.Wrap(e, mgr.Accessors()), repeat, until, c.Every)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveEvents(created...); err != nil {
		return err
	}

	if len(created) == 1 {
		ctx.printf("✓ Added %s (%s)\n", e.Title, shortID(e.ID))
	} else {
		ctx.printf("✓ Added %d occurrences of %s (group %s)\n", len(created), e.Title, shortID(*e.GroupID))
	}
	return nil
}
