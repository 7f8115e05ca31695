package transfer

import (
	"fmt"

	"github.com/julianstephens/timetable/internal/accessor"
	apperr "github.com/julianstephens/timetable/internal/errors"
)

// Selector is a named column bound to one property of E
type Selector[E any] struct {
	Name   string
	format func(*E) (string, error)
	parse  func(*E, string) error // nil for export-only columns
	err    error
}

// Writable reports whether the column is applied on import
func (s Selector[E]) Writable() bool {
	return s.parse != nil
}

type columnOptions[V any] struct {
	format   func(V) string
	parse    func(string) (V, error)
	readOnly bool
}

type ColumnOption[V any] func(*columnOptions[V])

// WithFormatter replaces the default export conversion
func WithFormatter[V any](fn func(V) string) ColumnOption[V] {
	return func(o *columnOptions[V]) {
		o.format = fn
	}
}

// WithParser replaces the default import conversion
func WithParser[V any](fn func(string) (V, error)) ColumnOption[V] {
	return func(o *columnOptions[V]) {
		o.parse = fn
	}
}

// ReadOnly keeps the column out of imports
func ReadOnly[V any]() ColumnOption[V] {
	return func(o *columnOptions[V]) {
		o.readOnly = true
	}
}

// NewColumn binds a column name to a typed getter and setter. A nil setter makes the
// column export-only. Problems are reported by NewCodec.
func NewColumn[E any, V any](name string, get func(*E) V, set func(*E, V), opts ...ColumnOption[V]) Selector[E] {
	o := columnOptions[V]{}
	for _, opt := range opts {
		opt(&o)
	}

	s := Selector[E]{Name: name}
	if get == nil {
		s.err = fmt.Errorf("%w: column %q has no getter", apperr.ErrInvalidAccessor, name)
		return s
	}

	s.format = func(e *E) (string, error) {
		v := get(e)
		if o.format != nil {
			return o.format(v), nil
		}
		return formatValue(v)
	}

	if set == nil || o.readOnly {
		return s
	}
	s.parse = func(e *E, raw string) error {
		if o.parse != nil {
			v, err := o.parse(raw)
			if err != nil {
				return fmt.Errorf("%w: %v", apperr.ErrConversion, err)
			}
			set(e, v)
			return nil
		}
		var zero V
		parsed, err := parseValue(any(zero), raw)
		if err != nil {
			return err
		}
		v, ok := parsed.(V)
		if !ok {
			return fmt.Errorf("%w: got %T for %T", apperr.ErrConversion, parsed, zero)
		}
		set(e, v)
		return nil
	}
	return s
}

// extraColumn adapts a type-erased extra field, parsing into the type its getter
// returns on a fresh instance
func extraColumn[E any](field accessor.ExtraField[E], factory func() *E) Selector[E] {
	return Selector[E]{
		Name: field.Name,
		format: func(e *E) (string, error) {
			return formatValue(field.Get(e))
		},
		parse: func(e *E, raw string) error {
			parsed, err := parseValue(field.Get(factory()), raw)
			if err != nil {
				return err
			}
			if err := field.Set(e, parsed); err != nil {
				return fmt.Errorf("%w: %v", apperr.ErrConversion, err)
			}
			return nil
		},
	}
}

// EventColumns returns Title, DateFrom, DateTo, GroupId and every extra field of props
// as columns, in that order
func EventColumns[E any](props *accessor.Accessors[E]) []Selector[E] {
	cols := []Selector[E]{
		NewColumn("Title", props.Title.Get, props.Title.Set),
		NewColumn("DateFrom", props.DateFrom.Get, props.DateFrom.Set),
		NewColumn("DateTo", props.DateTo.Get, props.DateTo.Set),
		NewColumn("GroupId", props.GroupID.Get, props.GroupID.Set),
	}
	for _, extra := range props.Extras {
		cols = append(cols, extraColumn(extra, props.New))
	}
	return cols
}
