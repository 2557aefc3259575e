package listview

import (
	"slices"
	"time"
)

// StatsScope selects which collection a Controller aggregates.
type StatsScope int

const (
	// ScopeFiltered aggregates the visible subset.
	ScopeFiltered StatsScope = iota
	// ScopeAll aggregates the raw collection regardless of filters.
	ScopeAll
)

type controllerOptions struct {
	scope StatsScope
	now   func() time.Time
}

// ControllerOption configures a Controller.
type ControllerOption func(*controllerOptions)

// WithStatsScope sets the collection statistics are computed over.
func WithStatsScope(scope StatsScope) ControllerOption {
	return func(o *controllerOptions) { o.scope = scope }
}

// WithClock sets the time source used to anchor series and comparisons.
func WithClock(now func() time.Time) ControllerOption {
	return func(o *controllerOptions) { o.now = now }
}

// Controller owns a raw collection and the filter state of one list view and
// keeps the visible subset and statistics derived from them. A Controller is
// not safe for concurrent use.
type Controller[T any] struct {
	schema *Schema[T]
	agg    *Aggregator[T]
	opts   controllerOptions

	records []T
	state   FilterState
	visible []T
	stats   Result
}

// NewController returns a controller with an empty collection and the
// default filter state. agg may be nil when the view has no statistics.
func NewController[T any](schema *Schema[T], agg *Aggregator[T], opts ...ControllerOption) *Controller[T] {
	o := controllerOptions{scope: ScopeFiltered, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Controller[T]{schema: schema, agg: agg, opts: o}
	c.recompute()
	return c
}

// SetRecords replaces the raw collection.
func (c *Controller[T]) SetRecords(records []T) {
	c.records = slices.Clone(records)
	c.recompute()
}

// SetFilterField replaces the criterion of one dimension. The search
// dimension takes a string, the range dimension a DateRange, *DateRange or
// nil, and a categorical dimension a []string, a string or nil. Empty values
// clear the criterion. On error the state is left unchanged.
func (c *Controller[T]) SetFilterField(dimension string, value any) error {
	switch dimension {
	case SearchDimension:
	case RangeDimension:
		if c.schema.rangeField == "" {
			return unknownField(dimension)
		}
	default:
		if !c.schema.HasCategory(dimension) {
			return unknownField(dimension)
		}
	}

	next, err := c.state.With(dimension, value)
	if err != nil {
		return err
	}
	c.state = next
	c.recompute()
	return nil
}

// SetSearch sets the free-text search term.
func (c *Controller[T]) SetSearch(term string) {
	next := c.state.Clone()
	next.Search = term
	c.state = next
	c.recompute()
}

// SetCategory sets the selection of a categorical dimension.
func (c *Controller[T]) SetCategory(dimension string, values ...string) error {
	return c.SetFilterField(dimension, values)
}

// SetDateRange sets or, with nil, clears the date range.
func (c *Controller[T]) SetDateRange(r *DateRange) error {
	return c.SetFilterField(RangeDimension, r)
}

// ApplyState validates state and replaces the whole filter state with it.
func (c *Controller[T]) ApplyState(state FilterState) error {
	if err := c.schema.Validate(state); err != nil {
		return err
	}
	c.state = state.normalize()
	c.recompute()
	return nil
}

// ResetFilters restores the default filter state.
func (c *Controller[T]) ResetFilters() {
	c.state = FilterState{}
	c.recompute()
}

// recompute derives the visible subset and statistics from the raw
// collection and the current state.
func (c *Controller[T]) recompute() {
	c.visible = c.schema.Filter(c.records, c.state)
	if c.agg == nil {
		c.stats = Result{}
		return
	}
	input := c.visible
	if c.opts.scope == ScopeAll {
		input = c.records
	}
	c.stats = c.agg.Aggregate(input, c.opts.now())
}

// Records returns a copy of the raw collection.
func (c *Controller[T]) Records() []T { return slices.Clone(c.records) }

// Visible returns a copy of the records matching the current state.
func (c *Controller[T]) Visible() []T { return slices.Clone(c.visible) }

// State returns a copy of the current filter state.
func (c *Controller[T]) State() FilterState { return c.state.Clone() }

// Stats returns the statistics for the current state.
func (c *Controller[T]) Stats() Result { return c.stats.Clone() }
