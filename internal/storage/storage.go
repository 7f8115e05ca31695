package storage

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/models"
)

var (
	ErrNotFound       = errors.New("event not found")
	ErrNotInitialized = errors.New("storage not initialized, run 'timetable init' first")
	ErrNotLoaded      = errors.New("storage not loaded")
)

// New picks the JSON store for .json paths and SQLite for everything else
func New(path string) Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}

// assignIDs gives every event without an id a fresh uuid
func assignIDs(events []*models.Event) {
	for _, e := range events {
		if e != nil && e.ID == "" {
			e.ID = uuid.NewString()
		}
	}
}

// sortEvents orders by start, then id, so listings are stable across backends
func sortEvents(events []models.Event) {
	slices.SortFunc(events, func(a, b models.Event) int {
		if c := a.DateFrom.Compare(b.DateFrom); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// Times are stored as naive wall-clock text and read back in the local zone
func formatTime(t time.Time) string {
	return t.Format(constants.CSVDateTimeFormat)
}

func parseTime(s string) (time.Time, error) {
	return time.ParseInLocation(constants.CSVDateTimeFormat, s, time.Local)
}
