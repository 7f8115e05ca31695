package transfer

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/julianstephens/timetable/internal/constants"
	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/utils"
)

// formatValue renders a value for export. Nil values and zero times become "".
func formatValue(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", nil
		}
		v = rv.Elem().Interface()
	}

	switch x := v.(type) {
	case string:
		return x, nil
	case time.Time:
		if x.IsZero() {
			return "", nil
		}
		return x.Format(constants.CSVDateTimeFormat), nil
	case time.Duration:
		return x.String(), nil
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v), nil
	}
	return s, nil
}

// parseValue converts raw into a value of the same type as sample. Empty input yields
// sample's zero value, or a nil pointer for pointer types.
func parseValue(sample any, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	var (
		v   any
		err error
	)
	switch sample.(type) {
	case string:
		return raw, nil
	case *string:
		if raw == "" {
			return (*string)(nil), nil
		}
		return &raw, nil
	case bool:
		v, err = orZero(raw, false, cast.ToBoolE)
	case int:
		v, err = orZero(raw, 0, cast.ToIntE)
	case int8:
		v, err = orZero(raw, int8(0), cast.ToInt8E)
	case int16:
		v, err = orZero(raw, int16(0), cast.ToInt16E)
	case int32:
		v, err = orZero(raw, int32(0), cast.ToInt32E)
	case int64:
		v, err = orZero(raw, int64(0), cast.ToInt64E)
	case uint:
		v, err = orZero(raw, uint(0), cast.ToUintE)
	case uint8:
		v, err = orZero(raw, uint8(0), cast.ToUint8E)
	case uint16:
		v, err = orZero(raw, uint16(0), cast.ToUint16E)
	case uint32:
		v, err = orZero(raw, uint32(0), cast.ToUint32E)
	case uint64:
		v, err = orZero(raw, uint64(0), cast.ToUint64E)
	case float32:
		v, err = orZero(raw, float32(0), cast.ToFloat32E)
	case float64:
		v, err = orZero(raw, float64(0), cast.ToFloat64E)
	case time.Duration:
		v, err = orZero(raw, time.Duration(0), cast.ToDurationE)
	case time.Time:
		v, err = orZero(raw, time.Time{}, parseTime)
	case *int:
		v, err = orNil(raw, cast.ToIntE)
	case *int64:
		v, err = orNil(raw, cast.ToInt64E)
	case *float64:
		v, err = orNil(raw, cast.ToFloat64E)
	case *bool:
		v, err = orNil(raw, cast.ToBoolE)
	case *time.Time:
		v, err = orNil(raw, parseTime)
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", apperr.ErrConversion, sample)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q as %T: %v", apperr.ErrConversion, raw, sample, err)
	}
	return v, nil
}

func orZero[V any](raw string, zero V, conv func(any) (V, error)) (V, error) {
	if raw == "" {
		return zero, nil
	}
	return conv(raw)
}

func orNil[V any](raw string, conv func(any) (V, error)) (*V, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := conv(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseTime reads times as local wall-clock values, trying the export layout first
func parseTime(v any) (time.Time, error) {
	s := cast.ToString(v)
	if t, err := utils.ParseDateTime(s, time.Local); err == nil {
		return t, nil
	}
	return cast.ToTimeInDefaultLocationE(s, time.Local)
}
