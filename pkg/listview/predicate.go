package listview

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher compiles state into a predicate. Search uses full Unicode case
// folding, so "ß" matches "ss".
//
// Criteria referring to fields the schema does not define never match; call
// Validate first to surface them as errors.
func (s *Schema[T]) Matcher(state FilterState) func(T) bool {
	var checks []func(T) bool

	if state.Search != "" {
		folder := cases.Fold()
		term := folder.String(state.Search)
		fields := s.search
		checks = append(checks, func(r T) bool {
			for _, f := range fields {
				v, ok := f.get(r)
				if !ok {
					continue
				}
				if strings.Contains(folder.String(v), term) {
					return true
				}
			}
			return false
		})
	}

	for dim, selected := range state.Categories {
		if len(selected) == 0 {
			continue
		}
		get, ok := s.categories[dim]
		if !ok {
			return func(T) bool { return false }
		}
		set := make(map[string]struct{}, len(selected))
		for _, v := range selected {
			set[v] = struct{}{}
		}
		checks = append(checks, func(r T) bool {
			v, ok := get(r)
			if !ok {
				return false
			}
			_, member := set[v]
			return member
		})
	}

	if state.Range != nil {
		get, ok := s.dates[s.rangeField]
		if !ok {
			return func(T) bool { return false }
		}
		rng := *state.Range
		checks = append(checks, func(r T) bool {
			v, ok := get(r)
			return ok && rng.Contains(v)
		})
	}

	return func(r T) bool {
		for _, check := range checks {
			if !check(r) {
				return false
			}
		}
		return true
	}
}

// Matches reports whether record satisfies every active criterion in state.
func (s *Schema[T]) Matches(record T, state FilterState) bool {
	return s.Matcher(state)(record)
}

// Filter returns the records matching state, in their original order. The
// result never aliases records.
func (s *Schema[T]) Filter(records []T, state FilterState) []T {
	match := s.Matcher(state)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}
