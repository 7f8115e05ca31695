package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/timetable/internal/grid"
	"github.com/julianstephens/timetable/internal/manager"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// MoveCmd drops an event onto another cell of the week it is shown in,
// the way the grid does it: slot moves take the slot time, all-day moves keep it.
type MoveCmd struct {
	ID    string `arg:"" help:"Event id or unique id prefix."`
	To    string `short:"t" help:"Target (YYYY-MM-DD HH:MM) inside the event's week." required:""`
	Group bool   `short:"g" help:"Shift the other events of the group by the same amount."`
}

func (c *MoveCmd) Run(ctx *Context) error {
	to, err := utils.ParseDateTime(c.To, time.Local)
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

	mgr, err := ctx.manager(manager.WithDisplayType[models.Event](models.DisplayWeek))
	if err != nil {
		return err
	}
	mgr.SetDate(target.DateFrom)
	g, err := mgr.Refresh(events)
	if err != nil {
		return err
	}

	item := g.FindItem(target)
	if item == nil {
		return fmt.Errorf("event %s is not visible in the timetable", shortID(target.ID))
	}
	cell := g.CellAt(to, g.ItemCell(item.ID).Type)
	if cell == nil || cell.Type == grid.CellDisabled {
		return fmt.Errorf("%s is not a visible cell of %s; use 'edit --from' to move further", to.Format("2006-01-02 15:04"), g.Title)
	}

	var moved []*models.Event
	if c.Group {
		moved = mgr.MoveGroupEvents(events, item.ID, cell.ID)
	} else if e := mgr.MoveEvent(item.ID, cell.ID); e != nil {
		moved = []*models.Event{e}
	}
	if len(moved) == 0 {
		return fmt.Errorf("cannot move %s to %s", target.Title, cell.Title)
	}

	if err := ctx.Store.SaveEvents(moved...); err != nil {
		return err
	}
	ctx.printf("✓ Moved %d event(s), %s now %s\n", len(moved), target.Title, formatSpan(target))
	return nil
}
