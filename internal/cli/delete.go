package cli

import (
	"github.com/julianstephens/timetable/internal/event"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

type DeleteCmd struct {
	ID    string `arg:"" help:"Event id or unique id prefix."`
	Scope string `short:"s" help:"Delete (single|future|all) events of the group." default:"single"`
}

func (c *DeleteCmd) Run(ctx *Context) error {
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
	mgr.CurrentDate = utils.DateOnly(target.DateFrom)

	_, removed, err := mgr.DeleteEvent(events, scope, event.Wrap(target, mgr.Accessors()))
	if err != nil {
		return err
	}
	ids := make([]string, len(removed))
	for i, e := range removed {
		ids[i] = e.ID
	}
	if err := ctx.Store.DeleteEvents(ids...); err != nil {
		return err
	}
	ctx.printf("✓ Deleted %d event(s)\n", len(ids))
	return nil
}
