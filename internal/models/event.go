package models

import "time"

// Event is the calendar entry persisted by the CLI and shown in the TUI.
// The timetable engine itself only reaches it through EventAccessors.
type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	DateFrom time.Time `json:"date_from"`
	DateTo   time.Time `json:"date_to"`
	GroupID  *string   `json:"group_id,omitempty"` // nil when not part of a recurrence
	Location string    `json:"location,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}
