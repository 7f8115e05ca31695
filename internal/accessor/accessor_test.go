package accessor

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperr "github.com/julianstephens/timetable/internal/errors"
)

type meeting struct {
	Start, End time.Time
	Name       string
	Group      *string
	Room       string
	Seats      int
}

func meetingBuilder() *Builder[meeting] {
	return NewBuilder(func() *meeting { return &meeting{} }).
		DateFrom(func(m *meeting) time.Time { return m.Start }, func(m *meeting, v time.Time) { m.Start = v }).
		DateTo(func(m *meeting) time.Time { return m.End }, func(m *meeting, v time.Time) { m.End = v }).
		Title(func(m *meeting) string { return m.Name }, func(m *meeting, v string) { m.Name = v }).
		GroupID(func(m *meeting) *string { return m.Group }, func(m *meeting, v *string) { m.Group = v })
}

func TestBuild_Valid(t *testing.T) {
	props, err := meetingBuilder().
		Extra(
			NewExtra("Room", func(m *meeting) string { return m.Room }, func(m *meeting, v string) { m.Room = v }),
			NewExtra("Seats", func(m *meeting) int { return m.Seats }, func(m *meeting, v int) { m.Seats = v }),
		).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	m := props.New()
	start := time.Date(2023, 10, 2, 9, 0, 0, 0, time.UTC)
	props.DateFrom.Set(m, start)
	props.Title.Set(m, "Standup")
	if got := props.DateFrom.Get(m); !got.Equal(start) {
		t.Errorf("DateFrom = %v, want %v", got, start)
	}
	if m.Name != "Standup" {
		t.Errorf("Title setter did not write the field, got %q", m.Name)
	}
	if len(props.Extras) != 2 || props.Extras[0].Name != "Room" || props.Extras[1].Name != "Seats" {
		t.Errorf("extras out of order: %+v", props.Extras)
	}
}

func TestBuild_MissingBindings(t *testing.T) {
	_, err := NewBuilder[meeting](nil).
		DateFrom(func(m *meeting) time.Time { return m.Start }, nil).
		Build()
	if err == nil {
		t.Fatal("expected an error for missing bindings")
	}
	if !errors.Is(err, apperr.ErrInvalidAccessor) {
		t.Errorf("error should wrap ErrInvalidAccessor, got %v", err)
	}
	for _, want := range []string{"factory", "DateFrom", "DateTo", "Title", "GroupID"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestBuild_DuplicateAndEmptyExtras(t *testing.T) {
	room := NewExtra("Room", func(m *meeting) string { return m.Room }, func(m *meeting, v string) { m.Room = v })
	_, err := meetingBuilder().
		Extra(room, room, NewExtra("  ", func(m *meeting) int { return m.Seats }, func(m *meeting, v int) { m.Seats = v })).
		Build()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "duplicate extra field \"Room\"") {
		t.Errorf("missing duplicate report: %v", err)
	}
	if !strings.Contains(err.Error(), "has no name") {
		t.Errorf("missing empty-name report: %v", err)
	}
}

func TestExtraField_SetTypeMismatch(t *testing.T) {
	seats := NewExtra("Seats", func(m *meeting) int { return m.Seats }, func(m *meeting, v int) { m.Seats = v })
	m := &meeting{Seats: 3}

	if err := seats.Set(m, "four"); !errors.Is(err, apperr.ErrInvalidAccessor) {
		t.Errorf("Set(string) error = %v, want ErrInvalidAccessor", err)
	}
	if err := seats.Set(m, nil); err != nil || m.Seats != 0 {
		t.Errorf("Set(nil) = %v, seats = %d; want zero value", err, m.Seats)
	}
	if err := seats.Set(m, 12); err != nil || seats.Get(m) != 12 {
		t.Errorf("Set(12) = %v, get = %v", err, seats.Get(m))
	}
}

func TestCopyExtras(t *testing.T) {
	props, err := meetingBuilder().
		Extra(NewExtra("Room", func(m *meeting) string { return m.Room }, func(m *meeting, v string) { m.Room = v })).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	src := &meeting{Room: "B12", Seats: 9}
	dst := &meeting{}
	if err := props.CopyExtras(dst, src); err != nil {
		t.Fatalf("CopyExtras() error = %v", err)
	}
	if dst.Room != "B12" {
		t.Errorf("Room = %q, want B12", dst.Room)
	}
	if dst.Seats != 0 {
		t.Errorf("Seats is not an extra and must not be copied, got %d", dst.Seats)
	}
	if _, ok := props.Extra("Room"); !ok {
		t.Error("Extra(\"Room\") not found")
	}
}
