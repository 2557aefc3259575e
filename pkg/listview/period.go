package listview

import (
	"fmt"
	"time"
)

// Period is a calendar unit used for series buckets and comparisons.
type Period string

const (
	Day   Period = "day"
	Week  Period = "week"
	Month Period = "month"
	Year  Period = "year"
)

func (p Period) valid() bool {
	switch p {
	case Day, Week, Month, Year:
		return true
	}
	return false
}

// Start returns the beginning of the period containing t, in t's location.
// Weeks start on Monday.
func (p Period) Start(t time.Time) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch p {
	case Day:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case Week:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	}
}

// Add shifts the period start t by n periods.
func (p Period) Add(t time.Time, n int) time.Time {
	switch p {
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Year:
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, n, 0)
	}
}

// Label formats a period start for display.
func (p Period) Label(start time.Time) string {
	switch p {
	case Day, Week:
		return start.Format("2006-01-02")
	case Year:
		return start.Format("2006")
	default:
		return start.Format("2006-01")
	}
}

func (p Period) orDefault() Period {
	if p == "" {
		return Month
	}
	return p
}

func parsePeriod(p Period) (Period, error) {
	p = p.orDefault()
	if !p.valid() {
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidConfig, p)
	}
	return p, nil
}
