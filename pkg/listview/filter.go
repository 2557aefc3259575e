package listview

import (
	"fmt"
	"slices"
	"time"
)

// FilterState is the set of active criteria for one list view. The zero value
// is the default state and excludes nothing.
type FilterState struct {
	Search     string              `json:"search,omitempty"`
	Categories map[string][]string `json:"categories,omitempty"`
	Range      *DateRange          `json:"range,omitempty"`
}

// DateRange is an inclusive range of whole calendar days. Each bound is
// interpreted in its own location.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange returns the range covering the calendar days of start through end.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: start, End: end}
}

// Inverted reports whether the start day falls after the end day.
func (r DateRange) Inverted() bool {
	return startOfDay(r.Start).After(startOfDay(r.End))
}

// Contains reports whether t falls on or between the start and end days.
// An inverted range contains nothing.
func (r DateRange) Contains(t time.Time) bool {
	if r.Inverted() {
		return false
	}
	from := startOfDay(r.Start)
	until := startOfDay(r.End).AddDate(0, 0, 1)
	return !t.Before(from) && t.Before(until)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsZero reports whether no criterion is active.
func (f FilterState) IsZero() bool {
	return f.Search == "" && len(f.Categories) == 0 && f.Range == nil
}

// Selected returns the selection for a categorical dimension.
func (f FilterState) Selected(dimension string) []string {
	return slices.Clone(f.Categories[dimension])
}

// Clone returns a deep copy of f.
func (f FilterState) Clone() FilterState {
	out := FilterState{Search: f.Search}
	if len(f.Categories) > 0 {
		out.Categories = make(map[string][]string, len(f.Categories))
		for k, v := range f.Categories {
			out.Categories[k] = slices.Clone(v)
		}
	}
	if f.Range != nil {
		r := *f.Range
		out.Range = &r
	}
	return out
}

// With returns a copy of f with the criterion of one dimension replaced,
// using the value rules of Controller.SetFilterField. It does not check the
// dimension against a schema: any name other than the search and range
// dimensions is taken as categorical.
func (f FilterState) With(dimension string, value any) (FilterState, error) {
	next := f.Clone()

	switch dimension {
	case SearchDimension:
		term, ok := value.(string)
		if !ok {
			return f, invalidValue(dimension, value)
		}
		next.Search = term

	case RangeDimension:
		switch v := value.(type) {
		case nil:
			next.Range = nil
		case DateRange:
			next.Range = &v
		case *DateRange:
			if v == nil {
				next.Range = nil
			} else {
				r := *v
				next.Range = &r
			}
		default:
			return f, invalidValue(dimension, value)
		}

	default:
		var selected []string
		switch v := value.(type) {
		case nil:
		case string:
			if v != "" {
				selected = []string{v}
			}
		case []string:
			selected = slices.Clone(v)
		default:
			return f, invalidValue(dimension, value)
		}
		if next.Categories == nil {
			next.Categories = make(map[string][]string)
		}
		next.Categories[dimension] = selected
	}

	return next.normalize(), nil
}

func invalidValue(dimension string, value any) error {
	return &FieldError{Field: dimension, Err: fmt.Errorf("%w %T", ErrInvalidValue, value)}
}

// normalize drops empty selections and duplicate values so that clearing a
// dimension restores the zero state.
func (f FilterState) normalize() FilterState {
	out := f.Clone()
	for k, v := range out.Categories {
		v = dedupe(v)
		if len(v) == 0 {
			delete(out.Categories, k)
			continue
		}
		out.Categories[k] = v
	}
	if len(out.Categories) == 0 {
		out.Categories = nil
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
