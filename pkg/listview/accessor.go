package listview

import (
	"time"

	"golang.org/x/exp/constraints"
)

// Numeric is any integer or floating point kind a Number field can read.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Str adapts a plain string field. Empty strings count as missing.
func Str[T any](get func(T) string) TextFunc[T] {
	return func(r T) (string, bool) {
		v := get(r)
		return v, v != ""
	}
}

// StrPtr adapts a nullable string field.
func StrPtr[T any](get func(T) *string) TextFunc[T] {
	return func(r T) (string, bool) {
		v := get(r)
		if v == nil {
			return "", false
		}
		return *v, true
	}
}

// Time adapts a plain time field. The zero time counts as missing.
func Time[T any](get func(T) time.Time) DateFunc[T] {
	return func(r T) (time.Time, bool) {
		v := get(r)
		return v, !v.IsZero()
	}
}

// TimePtr adapts a nullable time field.
func TimePtr[T any](get func(T) *time.Time) DateFunc[T] {
	return func(r T) (time.Time, bool) {
		v := get(r)
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	}
}

// Num adapts a plain numeric field. It is always present.
func Num[T any, N Numeric](get func(T) N) NumberFunc[T] {
	return func(r T) (float64, bool) {
		return float64(get(r)), true
	}
}

// NumPtr adapts a nullable numeric field.
func NumPtr[T any, N Numeric](get func(T) *N) NumberFunc[T] {
	return func(r T) (float64, bool) {
		v := get(r)
		if v == nil {
			return 0, false
		}
		return float64(*v), true
	}
}
