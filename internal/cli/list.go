package cli

import (
	"time"

	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

type ListCmd struct {
	From string `short:"f" help:"Only events ending on or after this date (YYYY-MM-DD)."`
	To   string `short:"t" help:"Only events starting on or before this date (YYYY-MM-DD)."`
}

func (c *ListCmd) Run(ctx *Context) error {
	events, err := ctx.loadEvents()
	if err != nil {
		return err
	}

	var from, to time.Time
	if c.From != "" {
		if from, err = utils.ParseDate(c.From, time.Local); err != nil {
			return err
		}
	}
	if c.To != "" {
		if to, err = utils.ParseDate(c.To, time.Local); err != nil {
			return err
		}
		to = to.AddDate(0, 0, 1)
	}

	var shown []*models.Event
	for _, e := range events {
		if !from.IsZero() && e.DateTo.Before(from) {
			continue
		}
		if !to.IsZero() && !e.DateFrom.Before(to) {
			continue
		}
		shown = append(shown, e)
	}

	if len(shown) == 0 {
		ctx.println("No events found.")
		return nil
	}
	for _, e := range shown {
		marker := " "
		if e.GroupID != nil {
			marker = "↻"
		}
		ctx.printf("%s %s  %-33s  %s\n", shortID(e.ID), marker, formatSpan(e), e.Title)
	}
	return nil
}
