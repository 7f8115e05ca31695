package constants

import "time"

const (
	AppName           = "timetable"
	DefaultConfigPath = "~/.config/timetable/config.yaml"
	DefaultDBName     = "timetable.db"
	Version           = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// TimeFormat12h is used when the timetable is configured for 12-hour display
	TimeFormat12h = "3:04 PM"

	// DateTimeFormat is accepted by the CLI for event boundaries
	DateTimeFormat = "2006-01-02 15:04"

	// CSVDateTimeFormat is the default text representation of time values in CSV files
	CSVDateTimeFormat = "2006-01-02 15:04:05"

	// Grid constants
	SlotDuration = 15 * time.Minute
	Day          = 24 * time.Hour
	// EndOfDay is the only TimeTo value that does not need to align to SlotDuration
	EndOfDay = 23*time.Hour + 59*time.Minute

	// CSV constants
	CSVSeparator = ';'
	CSVQuote     = '"'
)
