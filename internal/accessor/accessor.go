// Package accessor binds a host event type's fields to typed get/set pairs once,
// so the grid and mutation layers never need reflection.
package accessor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apperr "github.com/julianstephens/timetable/internal/errors"
)

// Field is a bound get/set pair for one field of E
type Field[E any, V any] struct {
	Get func(*E) V
	Set func(*E, V)
}

func (f Field[E, V]) bound() bool {
	return f.Get != nil && f.Set != nil
}

// ExtraField is a type-erased get/set pair for a caller-defined auxiliary field
type ExtraField[E any] struct {
	Name string
	Get  func(*E) any
	Set  func(*E, any) error
}

// NewExtra wraps a typed get/set pair. The resulting setter rejects values of
// another type and treats nil as the zero value.
func NewExtra[E any, V any](name string, get func(*E) V, set func(*E, V)) ExtraField[E] {
	field := ExtraField[E]{Name: name}
	if get != nil {
		field.Get = func(e *E) any { return get(e) }
	}
	if set != nil {
		field.Set = func(e *E, value any) error {
			if value == nil {
				var zero V
				set(e, zero)
				return nil
			}
			typed, ok := value.(V)
			if !ok {
				var zero V
				return fmt.Errorf("%w: field %q expects %T, got %T", apperr.ErrInvalidAccessor, name, zero, value)
			}
			set(e, typed)
			return nil
		}
	}
	return field
}

// Accessors is the full set of bindings for an event type. Built once with a
// Builder and shared read-only afterwards.
type Accessors[E any] struct {
	DateFrom Field[E, time.Time]
	DateTo   Field[E, time.Time]
	Title    Field[E, string]
	GroupID  Field[E, *string]
	Extras   []ExtraField[E]

	// New returns a blank instance of E
	New func() *E
}

// CopyExtras copies every extra field from src onto dst
func (a *Accessors[E]) CopyExtras(dst, src *E) error {
	for _, extra := range a.Extras {
		if err := extra.Set(dst, extra.Get(src)); err != nil {
			return err
		}
	}
	return nil
}

// Extra looks up an extra field by name
func (a *Accessors[E]) Extra(name string) (ExtraField[E], bool) {
	for _, extra := range a.Extras {
		if extra.Name == name {
			return extra, true
		}
	}
	return ExtraField[E]{}, false
}

// Builder collects bindings and validates them in Build
type Builder[E any] struct {
	acc Accessors[E]
}

// NewBuilder starts a builder. factory must return a fresh blank instance on every call.
func NewBuilder[E any](factory func() *E) *Builder[E] {
	return &Builder[E]{acc: Accessors[E]{New: factory}}
}

func (b *Builder[E]) DateFrom(get func(*E) time.Time, set func(*E, time.Time)) *Builder[E] {
	b.acc.DateFrom = Field[E, time.Time]{Get: get, Set: set}
	return b
}

func (b *Builder[E]) DateTo(get func(*E) time.Time, set func(*E, time.Time)) *Builder[E] {
	b.acc.DateTo = Field[E, time.Time]{Get: get, Set: set}
	return b
}

func (b *Builder[E]) Title(get func(*E) string, set func(*E, string)) *Builder[E] {
	b.acc.Title = Field[E, string]{Get: get, Set: set}
	return b
}

func (b *Builder[E]) GroupID(get func(*E) *string, set func(*E, *string)) *Builder[E] {
	b.acc.GroupID = Field[E, *string]{Get: get, Set: set}
	return b
}

// Extra appends auxiliary fields; order is preserved
func (b *Builder[E]) Extra(fields ...ExtraField[E]) *Builder[E] {
	b.acc.Extras = append(b.acc.Extras, fields...)
	return b
}

// Build validates every binding and returns an immutable Accessors value.
// All problems are reported together.
func (b *Builder[E]) Build() (*Accessors[E], error) {
	var errs []error
	if b.acc.New == nil {
		errs = append(errs, fmt.Errorf("%w: missing instance factory", apperr.ErrInvalidAccessor))
	}

	required := []struct {
		name  string
		bound bool
	}{
		{"DateFrom", b.acc.DateFrom.bound()},
		{"DateTo", b.acc.DateTo.bound()},
		{"Title", b.acc.Title.bound()},
		{"GroupID", b.acc.GroupID.bound()},
	}
	for _, r := range required {
		if !r.bound {
			errs = append(errs, fmt.Errorf("%w: %s needs both a getter and a setter", apperr.ErrInvalidAccessor, r.name))
		}
	}

	seen := make(map[string]bool, len(b.acc.Extras))
	for i, extra := range b.acc.Extras {
		name := strings.TrimSpace(extra.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("%w: extra field %d has no name", apperr.ErrInvalidAccessor, i))
		case seen[name]:
			errs = append(errs, fmt.Errorf("%w: duplicate extra field %q", apperr.ErrInvalidAccessor, name))
		}
		seen[name] = true
		if extra.Get == nil || extra.Set == nil {
			errs = append(errs, fmt.Errorf("%w: extra field %q needs both a getter and a setter", apperr.ErrInvalidAccessor, extra.Name))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	acc := b.acc
	acc.Extras = append([]ExtraField[E](nil), b.acc.Extras...)
	return &acc, nil
}
