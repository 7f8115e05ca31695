package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/timetable/internal/constants"
	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/models"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	rt, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if rt.ConfigFile != path {
		t.Errorf("ConfigFile = %q", rt.ConfigFile)
	}
	if rt.DBPath != filepath.Join(filepath.Dir(path), constants.DefaultDBName) {
		t.Errorf("DBPath = %q", rt.DBPath)
	}
	def := models.DefaultConfig()
	if len(rt.Timetable.Days) != 7 || rt.Timetable.Days[0] != def.Days[0] {
		t.Errorf("Days = %v", rt.Timetable.Days)
	}
	if rt.Timetable.TimeTo != constants.EndOfDay || rt.Timetable.DisplayType != models.DisplayWeek {
		t.Errorf("Timetable = %+v", rt.Timetable)
	}
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `days: [sunday, monday, tuesday, wednesday, thursday]
months: [sep, oct, nov]
time_from: "08:00"
time_to: "24:00"
is_24_hour: false
display_type: month
db_path: ` + filepath.Join(dir, "events.db") + `
debug: true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	rt, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	cfg := rt.Timetable
	if len(cfg.Days) != 5 || cfg.Days[0] != time.Sunday || cfg.Days[4] != time.Thursday {
		t.Errorf("Days = %v", cfg.Days)
	}
	if len(cfg.Months) != 3 || cfg.Months[0] != time.September {
		t.Errorf("Months = %v", cfg.Months)
	}
	if cfg.TimeFrom != 8*time.Hour || cfg.TimeTo != constants.EndOfDay {
		t.Errorf("hours = %v..%v", cfg.TimeFrom, cfg.TimeTo)
	}
	if cfg.Is24HourFormat || cfg.DisplayType != models.DisplayMonth {
		t.Errorf("Timetable = %+v", cfg)
	}
	if rt.DBPath != filepath.Join(dir, "events.db") || !rt.Debug {
		t.Errorf("Runtime = %+v", rt)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("TIMETABLE_DISPLAY_TYPE", "day")
	t.Setenv("TIMETABLE_DAYS", "monday,tuesday,wednesday")
	t.Setenv("TIMETABLE_TIME_FROM", "09:00")
	t.Setenv("TIMETABLE_TIME_TO", "17:00")

	rt, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	cfg := rt.Timetable
	if cfg.DisplayType != models.DisplayDay {
		t.Errorf("DisplayType = %q", cfg.DisplayType)
	}
	if len(cfg.Days) != 3 || cfg.Days[2] != time.Wednesday {
		t.Errorf("Days = %v", cfg.Days)
	}
	if cfg.TimeFrom != 9*time.Hour || cfg.TimeTo != 17*time.Hour {
		t.Errorf("hours = %v..%v", cfg.TimeFrom, cfg.TimeTo)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown weekday", "days: [funday]\n"},
		{"bad time", "time_from: \"8am\"\n"},
		{"gap in days", "days: [monday, wednesday]\n"},
		{"reversed hours", "time_from: \"18:00\"\ntime_to: \"09:00\"\n"},
		{"unknown display type", "display_type: year\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); !errors.Is(err, apperr.ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("days: [monday\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed YAML")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	rt := Default(path)
	rt.Timetable.Days = []time.Weekday{time.Saturday, time.Sunday}
	rt.Timetable.TimeFrom = 7*time.Hour + 30*time.Minute
	rt.Timetable.TimeTo = 19 * time.Hour
	rt.Timetable.DisplayType = models.DisplayDay
	rt.Debug = true

	if err := Save(path, rt); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	got := loaded.Timetable
	if len(got.Days) != 2 || got.Days[0] != time.Saturday || got.Days[1] != time.Sunday {
		t.Errorf("Days = %v", got.Days)
	}
	if got.TimeFrom != rt.Timetable.TimeFrom || got.TimeTo != rt.Timetable.TimeTo {
		t.Errorf("hours = %v..%v", got.TimeFrom, got.TimeTo)
	}
	if got.DisplayType != models.DisplayDay || !loaded.Debug || loaded.DBPath != rt.DBPath {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/.config/timetable", filepath.Join(home, ".config", "timetable")},
		{"/etc/timetable", "/etc/timetable"},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
