package listview_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-shop/pkg/listview"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newAggregator(t *testing.T, cfg listview.Config) *listview.Aggregator[delivery] {
	t.Helper()
	agg, err := listview.NewAggregator(deliverySchema(), cfg)
	require.NoError(t, err)
	return agg
}

func TestAggregate_SumAndAverageTreatNullAsZero(t *testing.T) {
	agg := newAggregator(t, listview.Config{Sum: []string{"gallons"}})
	records := []delivery{{Gallons: gallons(100)}, {Gallons: gallons(200)}, {}}

	res := agg.Aggregate(records, now)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 300.0, res.Sums["gallons"])
	assert.Equal(t, 100.0, res.Averages["gallons"])
}

func TestAggregate_AverageGapDays(t *testing.T) {
	agg := newAggregator(t, listview.Config{OrderBy: "delivered_at"})

	t.Run("two records", func(t *testing.T) {
		res := agg.Aggregate([]delivery{{DeliveredAt: day("2024-01-10")}, {DeliveredAt: day("2024-01-20")}}, now)
		assert.Equal(t, 10.0, res.AverageGapDays)
		require.NotNil(t, res.Earliest)
		require.NotNil(t, res.Latest)
		assert.Equal(t, *day("2024-01-10"), *res.Earliest)
		assert.Equal(t, *day("2024-01-20"), *res.Latest)
	})

	t.Run("unsorted input and null dates", func(t *testing.T) {
		res := agg.Aggregate([]delivery{
			{DeliveredAt: day("2024-01-20")},
			{},
			{DeliveredAt: day("2024-01-01")},
			{DeliveredAt: day("2024-01-10")},
		}, now)
		assert.InDelta(t, 9.5, res.AverageGapDays, 1e-9)
	})

	t.Run("clock time is ignored", func(t *testing.T) {
		late := time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC)
		early := time.Date(2024, 1, 11, 1, 0, 0, 0, time.UTC)
		res := agg.Aggregate([]delivery{{DeliveredAt: &late}, {DeliveredAt: &early}}, now)
		assert.Equal(t, 1.0, res.AverageGapDays)
	})

	t.Run("days are counted in the location of now", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		evening := time.Date(2024, 1, 11, 1, 0, 0, 0, time.UTC)  // Jan 10 20:00 in New York
		morning := time.Date(2024, 1, 20, 13, 0, 0, 0, time.UTC) // Jan 20 08:00 in New York
		records := []delivery{{DeliveredAt: &evening}, {DeliveredAt: &morning}}

		assert.Equal(t, 10.0, agg.Aggregate(records, now.In(ny)).AverageGapDays)
		assert.Equal(t, 9.0, agg.Aggregate(records, now).AverageGapDays)
	})

	t.Run("fewer than two dated records", func(t *testing.T) {
		res := agg.Aggregate([]delivery{{DeliveredAt: day("2024-01-10")}, {}}, now)
		assert.Equal(t, 0.0, res.AverageGapDays)
	})
}

func TestAggregate_EmptyCollection(t *testing.T) {
	agg := newAggregator(t, listview.Config{
		Sum:     []string{"gallons"},
		OrderBy: "delivered_at",
		Series:  &listview.SeriesConfig{Field: "gallons"},
		Compare: &listview.CompareConfig{Field: "gallons"},
		GroupBy: []string{"status"},
	})

	res := agg.Aggregate(nil, now)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, 0.0, res.Sums["gallons"])
	assert.Equal(t, 0.0, res.Averages["gallons"])
	assert.False(t, math.IsNaN(res.Averages["gallons"]))
	assert.Nil(t, res.Earliest)
	assert.Equal(t, 0.0, res.AverageGapDays)
	require.Len(t, res.Series, 12)
	for _, b := range res.Series {
		assert.Equal(t, 0.0, b.Value)
		assert.Equal(t, 0, b.Count)
	}
	require.NotNil(t, res.Comparison)
	assert.Equal(t, 0.0, res.Comparison.ChangePercent)
	assert.Empty(t, res.Groups["status"])
}

func TestAggregate_Series(t *testing.T) {
	agg := newAggregator(t, listview.Config{
		OrderBy: "delivered_at",
		Series:  &listview.SeriesConfig{Field: "gallons", Period: listview.Month, Count: 12},
	})

	records := []delivery{
		{DeliveredAt: day("2024-06-01"), Gallons: gallons(10)},
		{DeliveredAt: day("2024-06-14"), Gallons: gallons(5)},
		{DeliveredAt: day("2024-03-31"), Gallons: gallons(7)},
		{DeliveredAt: day("2023-07-01"), Gallons: gallons(1)},
		{DeliveredAt: day("2023-06-30"), Gallons: gallons(100)},
		{DeliveredAt: day("2024-05-02")},
		{Gallons: gallons(1000)},
	}
	res := agg.Aggregate(records, now)

	require.Len(t, res.Series, 12)
	assert.Equal(t, "2023-07", res.Series[0].Label)
	assert.Equal(t, "2024-06", res.Series[11].Label)

	byLabel := map[string]listview.Bucket{}
	for i, b := range res.Series {
		byLabel[b.Label] = b
		if i > 0 {
			assert.Equal(t, res.Series[i-1].End, b.Start, "buckets are contiguous")
		}
	}
	assert.Equal(t, 15.0, byLabel["2024-06"].Value)
	assert.Equal(t, 2, byLabel["2024-06"].Count)
	assert.Equal(t, 7.0, byLabel["2024-03"].Value)
	assert.Equal(t, 1.0, byLabel["2023-07"].Value)
	assert.Equal(t, 0.0, byLabel["2024-05"].Value)
	assert.Equal(t, 1, byLabel["2024-05"].Count)
	assert.Equal(t, 0.0, byLabel["2024-01"].Value)
}

func TestAggregate_SeriesCountsRecordsWithoutField(t *testing.T) {
	agg := newAggregator(t, listview.Config{
		Series: &listview.SeriesConfig{DateField: "delivered_at", Period: listview.Day, Count: 3},
	})
	res := agg.Aggregate([]delivery{
		{DeliveredAt: day("2024-06-15")},
		{DeliveredAt: day("2024-06-15")},
		{DeliveredAt: day("2024-06-13")},
	}, now)

	require.Len(t, res.Series, 3)
	assert.Equal(t, []string{"2024-06-13", "2024-06-14", "2024-06-15"},
		[]string{res.Series[0].Label, res.Series[1].Label, res.Series[2].Label})
	assert.Equal(t, 1.0, res.Series[0].Value)
	assert.Equal(t, 0.0, res.Series[1].Value)
	assert.Equal(t, 2.0, res.Series[2].Value)
}

func TestAggregate_SeriesLengthIsFixed(t *testing.T) {
	for _, count := range []int{1, 6, 24} {
		agg := newAggregator(t, listview.Config{
			Series: &listview.SeriesConfig{DateField: "delivered_at", Period: listview.Week, Count: count},
		})
		res := agg.Aggregate([]delivery{{DeliveredAt: day("2024-06-10")}}, now)
		assert.Len(t, res.Series, count)
		assert.Equal(t, time.Monday, res.Series[0].Start.Weekday())
	}
}

func TestAggregate_Comparison(t *testing.T) {
	agg := newAggregator(t, listview.Config{
		OrderBy: "delivered_at",
		Compare: &listview.CompareConfig{Field: "gallons"},
	})

	t.Run("previous period zero", func(t *testing.T) {
		res := agg.Aggregate([]delivery{{DeliveredAt: day("2024-02-01"), Gallons: gallons(500)}}, now)
		require.NotNil(t, res.Comparison)
		assert.Equal(t, 500.0, res.Comparison.Current)
		assert.Equal(t, 0.0, res.Comparison.Previous)
		assert.Equal(t, 0.0, res.Comparison.ChangePercent)
	})

	t.Run("calendar years", func(t *testing.T) {
		res := agg.Aggregate([]delivery{
			{DeliveredAt: day("2024-01-01"), Gallons: gallons(150)},
			{DeliveredAt: day("2023-12-31"), Gallons: gallons(60)},
			{DeliveredAt: day("2023-01-01"), Gallons: gallons(40)},
			{DeliveredAt: day("2022-12-31"), Gallons: gallons(999)},
		}, now)
		assert.Equal(t, listview.Year, res.Comparison.Period)
		assert.Equal(t, 150.0, res.Comparison.Current)
		assert.Equal(t, 100.0, res.Comparison.Previous)
		assert.Equal(t, 50.0, res.Comparison.ChangePercent)
		assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), res.Comparison.PreviousStart)
	})
}

func TestChangePercent(t *testing.T) {
	assert.Equal(t, 0.0, listview.ChangePercent(500, 0))
	assert.Equal(t, -50.0, listview.ChangePercent(50, 100))
	assert.Equal(t, 100.0, listview.ChangePercent(200, 100))
}

func TestAggregate_Groups(t *testing.T) {
	agg := newAggregator(t, listview.Config{GroupBy: []string{"status"}})
	res := agg.Aggregate([]delivery{{Status: "completed"}, {Status: "completed"}, {Status: "skipped"}, {}}, now)
	assert.Equal(t, map[string]int{"completed": 2, "skipped": 1}, res.Groups["status"])
}

func TestAggregate_IsIdempotent(t *testing.T) {
	agg := newAggregator(t, listview.Config{
		Sum:     []string{"gallons", "bottles"},
		OrderBy: "delivered_at",
		Series:  &listview.SeriesConfig{Field: "gallons"},
		Compare: &listview.CompareConfig{Field: "gallons"},
		GroupBy: []string{"status", "route"},
	})
	records := []delivery{
		{Status: "completed", Route: "north", DeliveredAt: day("2024-05-01"), Gallons: gallons(5), Bottles: 2},
		{Status: "skipped", DeliveredAt: day("2023-11-01")},
	}
	assert.Equal(t, agg.Aggregate(records, now), agg.Aggregate(records, now))
}

func TestNewAggregator_RejectsUnknownFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  listview.Config
		want error
	}{
		{"sum", listview.Config{Sum: []string{"litres"}}, listview.ErrUnknownField},
		{"sum of a date", listview.Config{Sum: []string{"delivered_at"}}, listview.ErrUnknownField},
		{"order", listview.Config{OrderBy: "created_at"}, listview.ErrUnknownField},
		{"group", listview.Config{GroupBy: []string{"driver"}}, listview.ErrUnknownField},
		{"series field", listview.Config{OrderBy: "delivered_at", Series: &listview.SeriesConfig{Field: "litres"}}, listview.ErrUnknownField},
		{"series without date", listview.Config{Series: &listview.SeriesConfig{}}, listview.ErrInvalidConfig},
		{"series period", listview.Config{OrderBy: "delivered_at", Series: &listview.SeriesConfig{Period: "fortnight"}}, listview.ErrInvalidConfig},
		{"series count", listview.Config{OrderBy: "delivered_at", Series: &listview.SeriesConfig{Count: -1}}, listview.ErrInvalidConfig},
		{"compare period", listview.Config{OrderBy: "delivered_at", Compare: &listview.CompareConfig{Period: listview.Week}}, listview.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := listview.NewAggregator(deliverySchema(), tt.cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
