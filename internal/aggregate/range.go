// Package aggregate derives dashboard views from already loaded expenses
// and budgets. Nothing here performs I/O.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"expense_tracker/internal/domain"
)

// RangeKind names a window filter
type RangeKind string

const (
	RangeAll    RangeKind = "all"
	RangeToday  RangeKind = "today"
	RangeWeek   RangeKind = "week"
	RangeMonth  RangeKind = "month"
	RangeYear   RangeKind = "year"
	RangeCustom RangeKind = "custom"
)

// Range is a window filter: either a rolling number of whole days back from
// now, a single calendar day, or everything.
type Range struct {
	Kind RangeKind `json:"kind"`
	Days int       `json:"days,omitempty"` // rolling windows only
	Date string    `json:"date,omitempty"` // custom only, YYYY-MM-DD
	Day  time.Time `json:"-"`              // custom only, parsed Date
}

var rollingDays = map[RangeKind]int{
	RangeWeek:  7,
	RangeMonth: 30,
	RangeYear:  365,
}

// ParseRange builds a Range from its name. date (YYYY-MM-DD) is required for
// custom. An empty name means all.
func ParseRange(name, date string) (Range, error) {
	kind := RangeKind(strings.ToLower(strings.TrimSpace(name)))
	switch kind {
	case "", RangeAll:
		return Range{Kind: RangeAll}, nil
	case RangeToday:
		return Range{Kind: RangeToday}, nil
	case RangeWeek, RangeMonth, RangeYear:
		return Range{Kind: kind, Days: rollingDays[kind]}, nil
	case RangeCustom:
		day, err := time.Parse("2006-01-02", strings.TrimSpace(date))
		if err != nil {
			return Range{}, fmt.Errorf("custom range needs date YYYY-MM-DD: %w", domain.ErrValidation)
		}
		return Range{Kind: RangeCustom, Date: day.Format("2006-01-02"), Day: day}, nil
	default:
		return Range{}, fmt.Errorf("unknown range %q: %w", name, domain.ErrValidation)
	}
}

// Contains reports whether date falls in r relative to now. Days are UTC
// calendar days; rolling windows include both boundary days and exclude
// future dates.
func (r Range) Contains(date, now time.Time) bool {
	day := truncateDay(date)
	today := truncateDay(now)
	switch r.Kind {
	case RangeAll:
		return true
	case RangeToday:
		return day.Equal(today)
	case RangeCustom:
		return day.Equal(truncateDay(r.Day))
	}
	diff := int(today.Sub(day).Hours() / 24)
	return diff >= 0 && diff <= r.Days
}

// Filter returns the expenses inside r, keeping their order
func Filter(expenses []domain.Expense, r Range, now time.Time) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if r.Contains(e.Date, now) {
			out = append(out, e)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
