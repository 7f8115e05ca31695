package cli

import (
	"time"

	"github.com/julianstephens/timetable/internal/event"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

type EditCmd struct {
	ID       string  `arg:"" help:"Event id or unique id prefix."`
	Title    string  `help:"New title."`
	From     string  `short:"f" help:"New start (YYYY-MM-DD HH:MM)."`
	To       string  `short:"t" help:"New end (YYYY-MM-DD HH:MM)."`
	Location *string `short:"l" help:"New location."`
	Notes    *string `short:"n" help:"New notes."`
	Scope    string  `short:"s" help:"Apply to (single|future|all) events of the group." default:"single"`
}

func (c *EditCmd) Run(ctx *Context) error {
	scope, err := models.ParseActionScope(c.Scope)
	if err != nil {
		return err
	}
	events, err := ctx.loadEvents()
	if err != nil {
		return err
	}
	target, err := findEvent(events, c.ID)
	if err != nil {
		return err
	}

	mgr, err := ctx.manager()
	if err != nil {
		return err
	}
	// "future" counts from the edited occurrence
	mgr.CurrentDate = utils.DateOnly(target.DateFrom)

	original := event.Wrap(target, mgr.Accessors())
	modified, err := original.Copy()
	if err != nil {
		return err
	}
	if c.Title != "" {
		modified.SetTitle(c.Title)
	}
	if c.From != "" {
		from, err := utils.ParseDateTime(c.From, time.Local)
		if err != nil {
			return err
		}
		modified.SetDateFrom(from)
	}
	if c.To != "" {
		to, err := utils.ParseDateTime(c.To, time.Local)
		if err != nil {
			return err
		}
		modified.SetDateTo(to)
	}
	if c.Location != nil {
		modified.Event().Location = *c.Location
	}
	if c.Notes != nil {
		modified.Event().Notes = *c.Notes
	}
	if err := checkRange(modified.DateFrom(), modified.DateTo()); err != nil {
		return err
	}

	changed, err := mgr.Update(events, scope, original, modified)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveEvents(changed...); err != nil {
		return err
	}
	ctx.printf("✓ Updated %d event(s)\n", len(changed))
	return nil
}
