package models

import (
	"sync"
	"time"

	"github.com/julianstephens/timetable/internal/accessor"
)

var eventAccessors = sync.OnceValue(func() *accessor.Accessors[Event] {
	props, err := accessor.NewBuilder(func() *Event { return &Event{} }).
		DateFrom(
			func(e *Event) time.Time { return e.DateFrom },
			func(e *Event, v time.Time) { e.DateFrom = v },
		).
		DateTo(
			func(e *Event) time.Time { return e.DateTo },
			func(e *Event, v time.Time) { e.DateTo = v },
		).
		Title(
			func(e *Event) string { return e.Title },
			func(e *Event, v string) { e.Title = v },
		).
		GroupID(
			func(e *Event) *string { return e.GroupID },
			func(e *Event, v *string) { e.GroupID = v },
		).
		Extra(
			accessor.NewExtra("Location",
				func(e *Event) string { return e.Location },
				func(e *Event, v string) { e.Location = v },
			),
			accessor.NewExtra("Notes",
				func(e *Event) string { return e.Notes },
				func(e *Event, v string) { e.Notes = v },
			),
		).
		Build()
	if err != nil {
		// the bindings above are static, so this can only be a programming error
		panic(err)
	}
	return props
})

// EventAccessors returns the shared property accessors for Event
func EventAccessors() *accessor.Accessors[Event] {
	return eventAccessors()
}
