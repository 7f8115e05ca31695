package render

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/timetable/internal/grid"
	"github.com/julianstephens/timetable/internal/models"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func weekGrid(cfg models.TimetableConfig, events ...*models.Event) *grid.Grid[models.Event] {
	return grid.WeekService[models.Event]{}.CreateGrid(events, cfg, at(2023, 10, 4, 0, 0), models.EventAccessors())
}

func TestGrid_Week(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.TimeFrom = 8 * time.Hour
	cfg.TimeTo = 12 * time.Hour

	g := weekGrid(cfg,
		&models.Event{Title: "Standup", DateFrom: at(2023, 10, 3, 9, 0), DateTo: at(2023, 10, 3, 10, 0)},
		&models.Event{Title: "Offsite", DateFrom: at(2023, 10, 5, 0, 0), DateTo: at(2023, 10, 6, 23, 0)},
	)
	out := Grid(g, cfg)

	for _, want := range []string{g.Title, "Mon Oct 2", "Sun Oct 8", "all-day", "08:00", "11:45", "Standup", "Offsite (2d)", "│"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "12:00") {
		t.Error("output contains a slot past the configured end")
	}
}

func TestGrid_OverlappingItems(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.TimeFrom = 9 * time.Hour
	cfg.TimeTo = 10 * time.Hour

	g := weekGrid(cfg,
		&models.Event{Title: "Long", DateFrom: at(2023, 10, 3, 9, 0), DateTo: at(2023, 10, 3, 9, 45)},
		&models.Event{Title: "Short", DateFrom: at(2023, 10, 3, 9, 0), DateTo: at(2023, 10, 3, 9, 15)},
	)
	out := Grid(g, cfg)
	if !strings.Contains(out, "Long +1") {
		t.Errorf("expected the longest item first with an overflow count:\n%s", out)
	}
}

func TestGrid_DisabledColumns(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Days = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	cfg.Months = []time.Month{time.January}
	cfg.TimeFrom = 9 * time.Hour
	cfg.TimeTo = 10 * time.Hour

	out := Grid(weekGrid(cfg), cfg)
	if !strings.Contains(out, "·") {
		t.Errorf("expected disabled slot markers:\n%s", out)
	}
}

func TestGrid_Month(t *testing.T) {
	cfg := models.DefaultConfig()
	events := []*models.Event{
		{Title: "Trip", DateFrom: at(2023, 10, 9, 8, 0), DateTo: at(2023, 10, 11, 18, 0)},
	}
	for i := range 5 {
		events = append(events, &models.Event{Title: "Busy", DateFrom: at(2023, 10, 20, 8+i, 0), DateTo: at(2023, 10, 20, 9+i, 0)})
	}
	g := grid.MonthService[models.Event]{}.CreateGrid(events, cfg, at(2023, 10, 15, 0, 0), models.EventAccessors())
	out := Grid(g, cfg)

	for _, want := range []string{"October 2023", "Mon", "Sun", "31", "Trip (3d)", "+2 more"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGridWidth_FitsColumns(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.TimeFrom = 9 * time.Hour
	cfg.TimeTo = 10 * time.Hour
	g := weekGrid(cfg, &models.Event{Title: "A very long meeting title", DateFrom: at(2023, 10, 3, 9, 0), DateTo: at(2023, 10, 3, 9, 30)})

	out := GridWidth(g, cfg, 80)
	if strings.Contains(out, "A very long meeting title") {
		t.Error("expected the title to be truncated")
	}
	if !strings.Contains(out, "…") {
		t.Errorf("expected an ellipsis:\n%s", out)
	}
}

func TestGrid_Empty(t *testing.T) {
	if got := Grid[models.Event](nil, models.DefaultConfig()); got != "" {
		t.Errorf("Grid(nil) = %q, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"héllo wörld", 6, "héllo…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
