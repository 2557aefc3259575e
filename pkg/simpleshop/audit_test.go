package simpleshop_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-shop/pkg/simpleshop"
)

func TestDiff(t *testing.T) {
	before := map[string]any{
		"name":  "Valve",
		"notes": "fragile",
		"email": "",
		"qty":   3,
	}
	after := map[string]any{
		"name":  "Ball valve",
		"notes": "",
		"email": "ops@example.com",
		"qty":   3,
	}

	changes := simpleshop.Diff(before, after)
	require.Len(t, changes, 3)

	assert.Equal(t, "email", changes[0].Field)
	assert.Equal(t, `set email to "ops@example.com"`, changes[0].Description)
	assert.Equal(t, "name", changes[1].Field)
	assert.Equal(t, "Valve", changes[1].From)
	assert.Equal(t, "Ball valve", changes[1].To)
	assert.Equal(t, `changed name from "Valve" to "Ball valve"`, changes[1].Description)
	assert.Equal(t, "cleared notes", changes[2].Description)

	assert.Equal(t,
		`set email to "ops@example.com"; changed name from "Valve" to "Ball valve"; cleared notes`,
		simpleshop.Summarize(changes))
}

func TestDiff_FieldOnlyOnOneSide(t *testing.T) {
	changes := simpleshop.Diff(map[string]any{}, map[string]any{"reorder_level": 4})
	require.Len(t, changes, 1)
	assert.Equal(t, `set reorder level to "4"`, changes[0].Description)

	assert.Empty(t, simpleshop.Diff(map[string]any{"a": (*int)(nil)}, map[string]any{}))
}

func TestFormatValue(t *testing.T) {
	at := time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"time in UTC", at, "2024-06-15 12:30"},
		{"zero time", time.Time{}, ""},
		{"nil time pointer", (*time.Time)(nil), ""},
		{"time pointer", &at, "2024-06-15 12:30"},
		{"decimal", decimal.RequireFromString("12.5"), "12.50"},
		{"uuid pointer", &id, id.String()},
		{"nil uuid pointer", (*uuid.UUID)(nil), ""},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"nil int pointer", (*int)(nil), ""},
		{"float", 1.25, "1.25"},
		{"nil float pointer", (*float64)(nil), ""},
		{"named string", simpleshop.Priority("high"), "high"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, simpleshop.FormatValue(tt.value))
		})
	}
}
