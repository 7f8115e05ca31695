package models

import (
	"fmt"
	"strings"
)

// DisplayType selects the grid layout
type DisplayType string

const (
	DisplayDay   DisplayType = "day"
	DisplayWeek  DisplayType = "week"
	DisplayMonth DisplayType = "month"
)

// ParseDisplayType parses a display type name (case-insensitive)
func ParseDisplayType(s string) (DisplayType, error) {
	switch dt := DisplayType(strings.ToLower(strings.TrimSpace(s))); dt {
	case DisplayDay, DisplayWeek, DisplayMonth:
		return dt, nil
	default:
		return "", fmt.Errorf("invalid display type: %q", s)
	}
}

// ActionScope governs how many members of a recurrence group a mutation touches
type ActionScope string

const (
	// ScopeSingle affects only the given occurrence
	ScopeSingle ActionScope = "single"
	// ScopeFuture affects group members starting on or after the displayed date
	ScopeFuture ActionScope = "future"
	// ScopeAll affects every group member regardless of date
	ScopeAll ActionScope = "all"
)

func ParseActionScope(s string) (ActionScope, error) {
	switch scope := ActionScope(strings.ToLower(strings.TrimSpace(s))); scope {
	case ScopeSingle, ScopeFuture, ScopeAll:
		return scope, nil
	default:
		return "", fmt.Errorf("invalid action scope: %q", s)
	}
}

// Repeatability describes how CreateEvents generates occurrences
type Repeatability string

const (
	RepeatOnce    Repeatability = "once"
	RepeatDaily   Repeatability = "daily"
	RepeatWeekly  Repeatability = "weekly"
	RepeatMonthly Repeatability = "monthly"
	RepeatCustom  Repeatability = "custom"
)

func ParseRepeatability(s string) (Repeatability, error) {
	switch r := Repeatability(strings.ToLower(strings.TrimSpace(s))); r {
	case RepeatOnce, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatCustom:
		return r, nil
	case "":
		return RepeatOnce, nil
	default:
		return "", fmt.Errorf("invalid repeatability: %q", s)
	}
}
