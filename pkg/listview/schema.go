package listview

import (
	"fmt"
	"time"
)

// Reserved dimension names used by Controller.SetFilterField.
const (
	SearchDimension = "search"
	RangeDimension  = "range"
)

type (
	// TextFunc returns a searchable string and whether it is present.
	TextFunc[T any] func(T) (string, bool)
	// DateFunc returns a date and whether it is present.
	DateFunc[T any] func(T) (time.Time, bool)
	// NumberFunc returns a number and whether it is present.
	NumberFunc[T any] func(T) (float64, bool)
)

type textField[T any] struct {
	name string
	get  TextFunc[T]
}

// Schema describes the fields of a record type T that the evaluator and the
// aggregator can see. Each kind of field has its own namespace, so a value can
// be both searchable text and a category under the same name. Definition
// mistakes (duplicate or empty names, a range on an undefined date) are
// programming errors and panic.
type Schema[T any] struct {
	search     []textField[T]
	categories map[string]TextFunc[T]
	dates      map[string]DateFunc[T]
	numbers    map[string]NumberFunc[T]
	names      map[string]string
	rangeField string
}

// NewSchema returns an empty schema.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{
		categories: make(map[string]TextFunc[T]),
		dates:      make(map[string]DateFunc[T]),
		numbers:    make(map[string]NumberFunc[T]),
		names:      make(map[string]string),
	}
}

func (s *Schema[T]) claim(name, kind string) {
	if name == "" {
		panic(fmt.Sprintf("listview: empty %s field name", kind))
	}
	key := kind + "/" + name
	if _, ok := s.names[key]; ok {
		panic(fmt.Sprintf("listview: %s field %q already defined", kind, name))
	}
	s.names[key] = name
}

// Text adds a free-text searchable field. Search visits fields in the order
// they were added.
func (s *Schema[T]) Text(name string, get TextFunc[T]) *Schema[T] {
	s.claim(name, "text")
	s.search = append(s.search, textField[T]{name: name, get: get})
	return s
}

// Category adds a categorical dimension.
func (s *Schema[T]) Category(name string, get TextFunc[T]) *Schema[T] {
	if name == SearchDimension || name == RangeDimension {
		panic(fmt.Sprintf("listview: %q is a reserved dimension", name))
	}
	s.claim(name, "category")
	s.categories[name] = get
	return s
}

// Date adds a date field.
func (s *Schema[T]) Date(name string, get DateFunc[T]) *Schema[T] {
	s.claim(name, "date")
	s.dates[name] = get
	return s
}

// Number adds a numeric field.
func (s *Schema[T]) Number(name string, get NumberFunc[T]) *Schema[T] {
	s.claim(name, "number")
	s.numbers[name] = get
	return s
}

// RangeOn selects the date field the range filter applies to.
func (s *Schema[T]) RangeOn(name string) *Schema[T] {
	if _, ok := s.dates[name]; !ok {
		panic(fmt.Sprintf("listview: range field %q is not a date field", name))
	}
	s.rangeField = name
	return s
}

// RangeField returns the date field used by the range filter, or "".
func (s *Schema[T]) RangeField() string {
	return s.rangeField
}

// SearchFields returns the searchable field names in search order.
func (s *Schema[T]) SearchFields() []string {
	names := make([]string, len(s.search))
	for i, f := range s.search {
		names[i] = f.name
	}
	return names
}

// HasCategory reports whether name is a categorical dimension.
func (s *Schema[T]) HasCategory(name string) bool {
	_, ok := s.categories[name]
	return ok
}

// Validate checks that every criterion in state refers to a defined field.
func (s *Schema[T]) Validate(state FilterState) error {
	for dim := range state.Categories {
		if !s.HasCategory(dim) {
			return unknownField(dim)
		}
	}
	if state.Range != nil && s.rangeField == "" {
		return unknownField(RangeDimension)
	}
	return nil
}

func (s *Schema[T]) date(name string) (DateFunc[T], error) {
	get, ok := s.dates[name]
	if !ok {
		return nil, unknownField(name)
	}
	return get, nil
}

func (s *Schema[T]) number(name string) (NumberFunc[T], error) {
	get, ok := s.numbers[name]
	if !ok {
		return nil, unknownField(name)
	}
	return get, nil
}

func (s *Schema[T]) category(name string) (TextFunc[T], error) {
	get, ok := s.categories[name]
	if !ok {
		return nil, unknownField(name)
	}
	return get, nil
}
