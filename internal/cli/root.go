package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/timetable/internal/config"
	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/manager"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/storage"
	"github.com/julianstephens/timetable/internal/transfer"
)

type Context struct {
	Runtime config.Runtime
	Store   storage.Provider
	Out     io.Writer
	Now     func() time.Time
}

func NewContext(rt config.Runtime, store storage.Provider) *Context {
	return &Context{
		Runtime: rt,
		Store:   store,
		Out:     os.Stdout,
		Now:     time.Now,
	}
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// manager builds a timetable manager over the configured timetable
func (c *Context) manager(opts ...manager.Option[models.Event]) (*manager.Manager[models.Event], error) {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	opts = append([]manager.Option[models.Event]{manager.WithClock[models.Event](now)}, opts...)
	return manager.New(c.Runtime.Timetable, models.EventAccessors(), opts...)
}

// loadEvents opens the store and returns every event
func (c *Context) loadEvents() ([]*models.Event, error) {
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	stored, err := c.Store.GetAllEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	events := make([]*models.Event, len(stored))
	for i := range stored {
		events[i] = &stored[i]
	}
	return events, nil
}

// findEvent matches id exactly or as a unique prefix
func findEvent(events []*models.Event, id string) (*models.Event, error) {
	var matches []*models.Event
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("event id %q is ambiguous (%d matches)", id, len(matches))
	}
}

// eventCodec reads and writes events as CSV. The Id column is exported only.
func eventCodec() (*transfer.Codec[models.Event], error) {
	props := models.EventAccessors()
	columns := append([]transfer.Selector[models.Event]{
		transfer.NewColumn[models.Event, string]("Id", func(e *models.Event) string { return e.ID }, nil),
	}, transfer.EventColumns(props)...)
	return transfer.NewCodec(props.New, columns...)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatSpan(e *models.Event) string {
	from := e.DateFrom.Format("2006-01-02 15:04")
	if e.DateFrom.Year() == e.DateTo.Year() && e.DateFrom.YearDay() == e.DateTo.YearDay() {
		return from + " - " + e.DateTo.Format("15:04")
	}
	return from + " - " + e.DateTo.Format("2006-01-02 15:04")
}

func checkRange(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: event ends before it starts", apperr.ErrInvalidOperation)
	}
	return nil
}
