package simpleshop

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// SaveFilter stores a named filter for a view. Names are unique per view and
// case-insensitive. Saving a default clears the previous default of the view.
func (s *service) SaveFilter(ctx context.Context, req SaveFilterRequest) (*SavedFilter, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, required("name")
	}
	if err := s.views.validate(req.View, req.Filter); err != nil {
		return nil, err
	}

	existing, err := s.ListSavedFilters(ctx, req.View)
	if err != nil {
		return nil, err
	}
	for _, f := range existing {
		if strings.EqualFold(f.Name, name) {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateName, name, req.View)
		}
	}

	now := s.now()
	filter := &SavedFilter{
		ID:        uuid.New(),
		View:      req.View,
		Name:      name,
		Filter:    req.Filter.Clone(),
		IsDefault: req.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if filter.IsDefault {
		for _, f := range existing {
			if !f.IsDefault {
				continue
			}
			f.IsDefault = false
			f.UpdatedAt = now
			if err := s.repository.SavedFilters().Update(ctx, &f); err != nil {
				return nil, &RecordError{Kind: KindSavedFilter, ID: f.ID, Op: "update", Err: err}
			}
		}
	}

	if err := s.repository.SavedFilters().Create(ctx, filter); err != nil {
		return nil, &RecordError{Kind: KindSavedFilter, ID: filter.ID, Op: "create", Err: err}
	}
	return filter, nil
}

func (s *service) GetSavedFilter(ctx context.Context, id uuid.UUID) (*SavedFilter, error) {
	return getRecord(ctx, s.repository.SavedFilters(), KindSavedFilter, id)
}

// ListSavedFilters returns the filters of a view, the default first and the
// rest by name.
func (s *service) ListSavedFilters(ctx context.Context, view ViewName) ([]SavedFilter, error) {
	if _, err := ParseView(string(view)); err != nil {
		return nil, err
	}
	all, err := s.repository.SavedFilters().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved filters: %w", err)
	}
	out := make([]SavedFilter, 0, len(all))
	for _, f := range all {
		if f.View == view {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *service) DeleteSavedFilter(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.SavedFilters().Delete(ctx, id); err != nil {
		return &RecordError{Kind: KindSavedFilter, ID: id, Op: "delete", Err: err}
	}
	return nil
}
