package listview

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"time"
)

// DefaultSeriesCount is the number of buckets used when SeriesConfig.Count is 0.
const DefaultSeriesCount = 12

// Config selects which statistics an Aggregator computes.
type Config struct {
	// Sum lists numeric fields to sum and average.
	Sum []string
	// OrderBy is the date field that defines chronology for the earliest,
	// latest and average gap figures.
	OrderBy string
	Series  *SeriesConfig
	Compare *CompareConfig
	// GroupBy lists categorical dimensions to count per value.
	GroupBy []string
}

// SeriesConfig describes a trailing window of calendar buckets ending with
// the period that contains now.
type SeriesConfig struct {
	// Field is the numeric field accumulated per bucket. Empty counts records.
	Field string
	// DateField defaults to Config.OrderBy.
	DateField string
	Period    Period
	Count     int
}

// CompareConfig compares the current calendar period with the previous one.
type CompareConfig struct {
	// Field is the numeric field summed per period. Empty counts records.
	Field string
	// DateField defaults to Config.OrderBy.
	DateField string
	// Period defaults to Year.
	Period Period
}

// Result holds derived statistics. It is a value; aggregating again produces
// a new Result.
type Result struct {
	Count          int                       `json:"count"`
	Sums           map[string]float64        `json:"sums,omitempty"`
	Averages       map[string]float64        `json:"averages,omitempty"`
	Earliest       *time.Time                `json:"earliest,omitempty"`
	Latest         *time.Time                `json:"latest,omitempty"`
	AverageGapDays float64                   `json:"average_gap_days"`
	Series         []Bucket                  `json:"series,omitempty"`
	Comparison     *Comparison               `json:"comparison,omitempty"`
	Groups         map[string]map[string]int `json:"groups,omitempty"`
}

// Bucket is one period of a series, covering [Start, End).
type Bucket struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Value float64   `json:"value"`
	Count int       `json:"count"`
}

// Comparison is a period-over-period change. ChangePercent is 0 when the
// previous period is 0.
type Comparison struct {
	Period        Period    `json:"period"`
	CurrentStart  time.Time `json:"current_start"`
	PreviousStart time.Time `json:"previous_start"`
	Current       float64   `json:"current"`
	Previous      float64   `json:"previous"`
	ChangePercent float64   `json:"change_percent"`
}

type namedNumber[T any] struct {
	name string
	get  NumberFunc[T]
}

type namedCategory[T any] struct {
	name string
	get  TextFunc[T]
}

type series[T any] struct {
	value  NumberFunc[T]
	date   DateFunc[T]
	period Period
	count  int
}

type comparison[T any] struct {
	value  NumberFunc[T]
	date   DateFunc[T]
	period Period
}

// Aggregator computes a Result from a collection of T. Field references are
// resolved once by NewAggregator.
type Aggregator[T any] struct {
	sums    []namedNumber[T]
	order   DateFunc[T]
	series  *series[T]
	compare *comparison[T]
	groups  []namedCategory[T]
}

// NewAggregator resolves cfg against schema.
func NewAggregator[T any](schema *Schema[T], cfg Config) (*Aggregator[T], error) {
	a := &Aggregator[T]{}

	for _, name := range cfg.Sum {
		get, err := schema.number(name)
		if err != nil {
			return nil, err
		}
		a.sums = append(a.sums, namedNumber[T]{name: name, get: get})
	}

	if cfg.OrderBy != "" {
		get, err := schema.date(cfg.OrderBy)
		if err != nil {
			return nil, err
		}
		a.order = get
	}

	if s := cfg.Series; s != nil {
		value, date, err := resolveTimed(schema, s.Field, s.DateField, cfg.OrderBy)
		if err != nil {
			return nil, fmt.Errorf("series: %w", err)
		}
		period, err := parsePeriod(s.Period)
		if err != nil {
			return nil, err
		}
		count := s.Count
		if count == 0 {
			count = DefaultSeriesCount
		}
		if count < 0 {
			return nil, fmt.Errorf("%w: series count %d", ErrInvalidConfig, count)
		}
		a.series = &series[T]{value: value, date: date, period: period, count: count}
	}

	if c := cfg.Compare; c != nil {
		value, date, err := resolveTimed(schema, c.Field, c.DateField, cfg.OrderBy)
		if err != nil {
			return nil, fmt.Errorf("compare: %w", err)
		}
		period := c.Period
		if period == "" {
			period = Year
		}
		if period != Year && period != Month {
			return nil, fmt.Errorf("%w: compare period %q", ErrInvalidConfig, period)
		}
		a.compare = &comparison[T]{value: value, date: date, period: period}
	}

	for _, name := range cfg.GroupBy {
		get, err := schema.category(name)
		if err != nil {
			return nil, err
		}
		a.groups = append(a.groups, namedCategory[T]{name: name, get: get})
	}

	return a, nil
}

func resolveTimed[T any](schema *Schema[T], field, dateField, orderBy string) (NumberFunc[T], DateFunc[T], error) {
	if dateField == "" {
		dateField = orderBy
	}
	if dateField == "" {
		return nil, nil, fmt.Errorf("%w: no date field", ErrInvalidConfig)
	}
	date, err := schema.date(dateField)
	if err != nil {
		return nil, nil, err
	}
	value := countOne[T]
	if field != "" {
		if value, err = schema.number(field); err != nil {
			return nil, nil, err
		}
	}
	return value, date, nil
}

func countOne[T any](T) (float64, bool) { return 1, true }

// Aggregate computes statistics over records. now anchors the series window
// and the comparison periods, and its location decides calendar days. Null numbers count as 0 and null dates are left
// out of date-dependent figures.
func (a *Aggregator[T]) Aggregate(records []T, now time.Time) Result {
	res := Result{Count: len(records)}

	if len(a.sums) > 0 {
		res.Sums = make(map[string]float64, len(a.sums))
		res.Averages = make(map[string]float64, len(a.sums))
		for _, f := range a.sums {
			var sum float64
			for _, r := range records {
				if v, ok := f.get(r); ok {
					sum += v
				}
			}
			res.Sums[f.name] = sum
			res.Averages[f.name] = average(sum, len(records))
		}
	}

	if a.order != nil {
		dates := datesOf(records, a.order)
		if len(dates) > 0 {
			earliest, latest := dates[len(dates)-1], dates[0]
			res.Earliest, res.Latest = &earliest, &latest
		}
		res.AverageGapDays = averageGapDays(dates, now.Location())
	}

	if a.series != nil {
		res.Series = a.series.buckets(records, now)
	}

	if a.compare != nil {
		res.Comparison = a.compare.run(records, now)
	}

	if len(a.groups) > 0 {
		res.Groups = make(map[string]map[string]int, len(a.groups))
		for _, g := range a.groups {
			counts := make(map[string]int)
			for _, r := range records {
				if v, ok := g.get(r); ok {
					counts[v]++
				}
			}
			res.Groups[g.name] = counts
		}
	}

	return res
}

func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// datesOf returns the present dates of records, newest first.
func datesOf[T any](records []T, get DateFunc[T]) []time.Time {
	dates := make([]time.Time, 0, len(records))
	for _, r := range records {
		if d, ok := get(r); ok {
			dates = append(dates, d)
		}
	}
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates
}

// averageGapDays averages the calendar-day differences between consecutive
// dates sorted newest first. Days are counted in loc.
func averageGapDays(dates []time.Time, loc *time.Location) float64 {
	if len(dates) < 2 {
		return 0
	}
	var total int64
	for i := 1; i < len(dates); i++ {
		total += civilDay(dates[i-1].In(loc)) - civilDay(dates[i].In(loc))
	}
	return float64(total) / float64(len(dates)-1)
}

// civilDay numbers the calendar day of t independently of its clock time.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func (s *series[T]) buckets(records []T, now time.Time) []Bucket {
	buckets := make([]Bucket, s.count)
	if s.count == 0 {
		return buckets
	}
	first := s.period.Add(s.period.Start(now), -(s.count - 1))
	for i := range buckets {
		start := s.period.Add(first, i)
		buckets[i] = Bucket{
			Label: s.period.Label(start),
			Start: start,
			End:   s.period.Add(first, i+1),
		}
	}
	windowEnd := buckets[len(buckets)-1].End

	for _, r := range records {
		d, ok := s.date(r)
		if !ok || d.Before(first) || !d.Before(windowEnd) {
			continue
		}
		i := sort.Search(len(buckets), func(i int) bool { return d.Before(buckets[i].End) })
		if v, ok := s.value(r); ok {
			buckets[i].Value += v
		}
		buckets[i].Count++
	}
	return buckets
}

func (c *comparison[T]) run(records []T, now time.Time) *Comparison {
	curStart := c.period.Start(now)
	prevStart := c.period.Add(curStart, -1)
	curEnd := c.period.Add(curStart, 1)

	out := &Comparison{Period: c.period, CurrentStart: curStart, PreviousStart: prevStart}
	for _, r := range records {
		d, ok := c.date(r)
		if !ok {
			continue
		}
		v, ok := c.value(r)
		if !ok {
			continue
		}
		switch {
		case !d.Before(curStart) && d.Before(curEnd):
			out.Current += v
		case !d.Before(prevStart) && d.Before(curStart):
			out.Previous += v
		}
	}
	out.ChangePercent = ChangePercent(out.Current, out.Previous)
	return out
}

// ChangePercent returns the percentage change from previous to current, or 0
// when previous is 0.
func ChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Clone returns a deep copy of r.
func (r Result) Clone() Result {
	out := r
	out.Sums = maps.Clone(r.Sums)
	out.Averages = maps.Clone(r.Averages)
	out.Series = slices.Clone(r.Series)
	if r.Earliest != nil {
		t := *r.Earliest
		out.Earliest = &t
	}
	if r.Latest != nil {
		t := *r.Latest
		out.Latest = &t
	}
	if r.Comparison != nil {
		c := *r.Comparison
		out.Comparison = &c
	}
	if r.Groups != nil {
		out.Groups = make(map[string]map[string]int, len(r.Groups))
		for k, v := range r.Groups {
			out.Groups[k] = maps.Clone(v)
		}
	}
	return out
}
