// Package event wraps host event instances with their property accessors.
package event

import (
	"time"

	"github.com/julianstephens/timetable/internal/accessor"
)

// Descriptor owns one event instance together with the accessors that read and write it
type Descriptor[E any] struct {
	event *E
	props *accessor.Accessors[E]
}

// New creates a descriptor around a blank instance from the accessor factory
func New[E any](props *accessor.Accessors[E]) *Descriptor[E] {
	return &Descriptor[E]{event: props.New(), props: props}
}

// Wrap creates a descriptor around an existing instance without copying it
func Wrap[E any](e *E, props *accessor.Accessors[E]) *Descriptor[E] {
	return &Descriptor[E]{event: e, props: props}
}

func (d *Descriptor[E]) Event() *E {
	return d.event
}

func (d *Descriptor[E]) Accessors() *accessor.Accessors[E] {
	return d.props
}

func (d *Descriptor[E]) Title() string {
	return d.props.Title.Get(d.event)
}

func (d *Descriptor[E]) SetTitle(title string) {
	d.props.Title.Set(d.event, title)
}

func (d *Descriptor[E]) DateFrom() time.Time {
	return d.props.DateFrom.Get(d.event)
}

func (d *Descriptor[E]) SetDateFrom(t time.Time) {
	d.props.DateFrom.Set(d.event, t)
}

func (d *Descriptor[E]) DateTo() time.Time {
	return d.props.DateTo.Get(d.event)
}

func (d *Descriptor[E]) SetDateTo(t time.Time) {
	d.props.DateTo.Set(d.event, t)
}

func (d *Descriptor[E]) GroupID() *string {
	return d.props.GroupID.Get(d.event)
}

func (d *Descriptor[E]) SetGroupID(id *string) {
	d.props.GroupID.Set(d.event, id)
}

// IsGrouped reports whether the event belongs to a recurrence group
func (d *Descriptor[E]) IsGrouped() bool {
	return d.GroupID() != nil
}

// InGroup reports whether the event belongs to the given group
func (d *Descriptor[E]) InGroup(groupID string) bool {
	id := d.GroupID()
	return id != nil && *id == groupID
}

func (d *Descriptor[E]) Duration() time.Duration {
	return d.DateTo().Sub(d.DateFrom())
}

// MapTo writes every bound field of this event onto dst. The group id
// pointer is cloned so the two instances never share it.
func (d *Descriptor[E]) MapTo(dst *E) error {
	d.props.DateFrom.Set(dst, d.DateFrom())
	d.props.DateTo.Set(dst, d.DateTo())
	d.props.Title.Set(dst, d.Title())
	d.props.GroupID.Set(dst, cloneID(d.GroupID()))
	return d.props.CopyExtras(dst, d.event)
}

// Copy returns a descriptor over a new instance holding the same field values.
// Edits to the copy leave the original untouched until mapped back.
func (d *Descriptor[E]) Copy() (*Descriptor[E], error) {
	cp := New(d.props)
	if err := d.MapTo(cp.event); err != nil {
		return nil, err
	}
	return cp, nil
}

func cloneID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
