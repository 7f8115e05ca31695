package manager

import (
	"fmt"
	"time"

	"github.com/julianstephens/timetable/internal/accessor"
	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/grid"
	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
	"github.com/julianstephens/timetable/internal/validation"
)

// Manager owns the navigation state of one timetable and mutates its events.
// The event slice itself belongs to the caller; every mutation returns the affected events.
type Manager[E any] struct {
	CurrentDate time.Time
	DisplayType models.DisplayType
	// Grid is the last grid built by Refresh, kept for id lookups during moves
	Grid *grid.Grid[E]

	cfg      models.TimetableConfig
	props    *accessor.Accessors[E]
	registry *grid.Registry[E]
	now      func() time.Time
}

type Option[E any] func(*Manager[E])

// WithClock replaces time.Now as the source of "today"
func WithClock[E any](now func() time.Time) Option[E] {
	return func(m *Manager[E]) {
		m.now = now
	}
}

func WithRegistry[E any](r *grid.Registry[E]) Option[E] {
	return func(m *Manager[E]) {
		m.registry = r
	}
}

// WithDisplayType overrides the display type from the configuration
func WithDisplayType[E any](dt models.DisplayType) Option[E] {
	return func(m *Manager[E]) {
		m.DisplayType = dt
	}
}

// New validates cfg and returns a manager positioned on the first visible date from today
func New[E any](cfg models.TimetableConfig, props *accessor.Accessors[E], opts ...Option[E]) (*Manager[E], error) {
	result := validation.ValidateConfig(cfg)
	if err := result.Err(); err != nil {
		return nil, err
	}
	if props == nil {
		return nil, fmt.Errorf("%w: accessors are required", apperr.ErrInvalidAccessor)
	}

	m := &Manager[E]{
		DisplayType: cfg.DisplayType,
		cfg:         cfg,
		props:       props,
		registry:    grid.NewRegistry[E](),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if _, err := m.registry.Resolve(m.DisplayType); err != nil {
		return nil, err
	}

	m.Today()
	return m, nil
}

func (m *Manager[E]) Config() models.TimetableConfig {
	return m.cfg
}

func (m *Manager[E]) Accessors() *accessor.Accessors[E] {
	return m.props
}

// Today moves the anchor to the first visible date on or after the clock's date
func (m *Manager[E]) Today() {
	m.SetDate(m.now())
}

// SetDate moves the anchor to the first visible date on or after d
func (m *Manager[E]) SetDate(d time.Time) {
	m.CurrentDate = utils.GetNextValidDate(utils.DateOnly(d), m.cfg.Days, m.cfg.Months)
}

// Next steps the anchor forward by one unit of the current display type
func (m *Manager[E]) Next() {
	m.CurrentDate = utils.GetValidDateFor(m.CurrentDate, m.DisplayType, m.cfg.Days, m.cfg.Months, true)
}

// Previous steps the anchor back by one unit of the current display type
func (m *Manager[E]) Previous() {
	m.CurrentDate = utils.GetValidDateFor(m.CurrentDate, m.DisplayType, m.cfg.Days, m.cfg.Months, false)
}

// SetDisplayType switches the layout. Unknown display types fail with ErrNoService.
func (m *Manager[E]) SetDisplayType(dt models.DisplayType) error {
	if _, err := m.registry.Resolve(dt); err != nil {
		return err
	}
	m.DisplayType = dt
	return nil
}

// Refresh rebuilds the grid for the current anchor and display type and retains it
func (m *Manager[E]) Refresh(events []*E) (*grid.Grid[E], error) {
	svc, err := m.registry.Resolve(m.DisplayType)
	if err != nil {
		return nil, err
	}
	m.Grid = svc.CreateGrid(events, m.cfg, m.CurrentDate, m.props)
	logger.Debug("Grid rebuilt", "display", m.DisplayType, "date", m.CurrentDate.Format("2006-01-02"), "events", len(events))
	return m.Grid, nil
}
