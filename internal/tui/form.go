package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timetable/internal/constants"
	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/event"
	"github.com/julianstephens/timetable/internal/manager"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

type AddFormModel struct {
	Title    string
	From     string
	To       string
	Repeat   models.Repeatability
	Until    string
	Every    string
	Location string
}

// newAddFormModel proposes a one hour event at 09:00 on day
func newAddFormModel(day time.Time) *AddFormModel {
	start := utils.AtTimeOfDay(day, 9*time.Hour)
	return &AddFormModel{
		From:   start.Format(constants.DateTimeFormat),
		To:     start.Add(time.Hour).Format(constants.DateTimeFormat),
		Repeat: models.RepeatOnce,
		Until:  start.AddDate(0, 1, 0).Format(constants.DateFormat),
		Every:  "1",
	}
}

// NewAddForm creates the form for adding an event
func NewAddForm(fm *AddFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("From").
				Description("YYYY-MM-DD HH:MM").
				Value(&fm.From).
				Validate(validateDateTime),
			huh.NewInput().
				Title("To").
				Description("YYYY-MM-DD HH:MM").
				Value(&fm.To).
				Validate(validateDateTime),
			huh.NewInput().
				Title("Location").
				Value(&fm.Location),
		),
		huh.NewGroup(
			huh.NewSelect[models.Repeatability]().
				Title("Repeat").
				Options(
					huh.NewOption("Once", models.RepeatOnce),
					huh.NewOption("Daily", models.RepeatDaily),
					huh.NewOption("Weekly", models.RepeatWeekly),
					huh.NewOption("Monthly", models.RepeatMonthly),
					huh.NewOption("Every N Days", models.RepeatCustom),
				).
				Value(&fm.Repeat),
			huh.NewInput().
				Title("Until").
				Description("Last day of the recurrence (YYYY-MM-DD)").
				Value(&fm.Until).
				Validate(func(s string) error {
					_, err := utils.ParseDate(s, time.Local)
					return err
				}),
			huh.NewInput().
				Title("Interval (days)").
				Description("For 'Every N Days' recurrence").
				Value(&fm.Every).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("interval must be a positive number of days")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateDateTime(s string) error {
	_, err := utils.ParseDateTime(s, time.Local)
	return err
}

// Events builds the event described by the form along with its recurrences
func (fm *AddFormModel) Events(mgr *manager.Manager[models.Event]) ([]*models.Event, error) {
	from, err := utils.ParseDateTime(fm.From, time.Local)
	if err != nil {
		return nil, err
	}
	to, err := utils.ParseDateTime(fm.To, time.Local)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: event ends before it starts", apperr.ErrInvalidOperation)
	}

	e := &models.Event{
		Title:    strings.TrimSpace(fm.Title),
		DateFrom: from,
		DateTo:   to,
		Location: strings.TrimSpace(fm.Location),
	}

	var until time.Time
	every := 0
	if fm.Repeat != models.RepeatOnce {
		if until, err = utils.ParseDate(fm.Until, time.Local); err != nil {
			return nil, err
		}
	}
	if fm.Repeat == models.RepeatCustom {
		if every, err = strconv.Atoi(strings.TrimSpace(fm.Every)); err != nil {
			return nil, fmt.Errorf("invalid interval %q: %w", fm.Every, err)
		}
	}
	return mgr.CreateEvents(event.Wrap(e, mgr.Accessors()), fm.Repeat, until, every)
}
