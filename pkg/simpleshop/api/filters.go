package api

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-shop/pkg/listview"
	"github.com/tendant/simple-shop/pkg/simpleshop"
)

// Query parameters with a fixed meaning on list endpoints. Every other
// parameter names a categorical dimension.
const (
	paramSearch = "q"
	paramFrom   = "from"
	paramTo     = "to"
	paramSaved  = "saved"
)

const dateLayout = "2006-01-02"

// filterFromQuery builds the filter state of a list request. A saved filter
// is the starting point when one is named; the other parameters then replace
// its criteria dimension by dimension. Dimensions are not checked against
// the view here; the service rejects unknown ones.
func (h *Handler) filterFromQuery(ctx context.Context, view simpleshop.ViewName, query url.Values) (listview.FilterState, error) {
	var state listview.FilterState

	if raw := query.Get(paramSaved); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return state, fmt.Errorf("%w: saved filter id %q", simpleshop.ErrInvalidFilter, raw)
		}
		saved, err := h.service.GetSavedFilter(ctx, id)
		if err != nil {
			return state, err
		}
		if saved.View != view {
			return state, fmt.Errorf("%w: saved filter %s belongs to %s", simpleshop.ErrInvalidFilter, id, saved.View)
		}
		state = saved.Filter.Clone()
	}

	var err error
	if _, ok := query[paramSearch]; ok {
		if state, err = state.With(listview.SearchDimension, query.Get(paramSearch)); err != nil {
			return state, fmt.Errorf("%w: %w", simpleshop.ErrInvalidFilter, err)
		}
	}

	from, to := query.Get(paramFrom), query.Get(paramTo)
	if from != "" || to != "" {
		r, err := h.parseRange(from, to)
		if err != nil {
			return state, err
		}
		if state, err = state.With(listview.RangeDimension, r); err != nil {
			return state, fmt.Errorf("%w: %w", simpleshop.ErrInvalidFilter, err)
		}
	}

	dimensions := make([]string, 0, len(query))
	for key := range query {
		switch key {
		case paramSearch, paramFrom, paramTo, paramSaved:
			continue
		}
		dimensions = append(dimensions, key)
	}
	sort.Strings(dimensions)

	for _, dimension := range dimensions {
		if state, err = state.With(dimension, splitValues(query[dimension])); err != nil {
			return state, fmt.Errorf("%w: %w", simpleshop.ErrInvalidFilter, err)
		}
	}
	return state, nil
}

// parseRange reads a from/to pair of calendar days in the shop time zone.
func (h *Handler) parseRange(from, to string) (listview.DateRange, error) {
	if from == "" || to == "" {
		return listview.DateRange{}, fmt.Errorf("%w: %s and %s must be given together", simpleshop.ErrInvalidFilter, paramFrom, paramTo)
	}
	loc := h.service.Settings().Zone()
	start, err := time.ParseInLocation(dateLayout, from, loc)
	if err != nil {
		return listview.DateRange{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", simpleshop.ErrInvalidFilter, paramFrom)
	}
	end, err := time.ParseInLocation(dateLayout, to, loc)
	if err != nil {
		return listview.DateRange{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", simpleshop.ErrInvalidFilter, paramTo)
	}
	return listview.NewDateRange(start, end), nil
}

// splitValues accepts both repeated parameters and comma-separated lists.
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
