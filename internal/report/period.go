package report

import (
	"fmt"
	"time"

	"github.com/mbruton/pennywise/internal/domain"
)

type PeriodKind string

const (
	PeriodKindMonth PeriodKind = "month"
	PeriodKindYear  PeriodKind = "year"
	PeriodKindRange PeriodKind = "range"
)

// Period is a bounded calendar interval: start inclusive, end exclusive.
// A transaction dated exactly on the start boundary belongs to the period;
// one dated on the end boundary does not.
type Period struct {
	Kind  PeriodKind `json:"kind"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Year  int        `json:"year,omitempty"`
	Month int        `json:"month,omitempty"`
}

// MonthOf returns the period covering one calendar month.
func MonthOf(year, month int) (Period, error) {
	if year < 1 {
		return Period{}, fmt.Errorf("%w: year %d", domain.ErrInvalidPeriod, year)
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: month %d out of range", domain.ErrInvalidPeriod, month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Kind:  PeriodKindMonth,
		Start: start,
		End:   start.AddDate(0, 1, 0),
		Year:  year,
		Month: month,
	}, nil
}

// YearOf returns the period covering one calendar year.
func YearOf(year int) (Period, error) {
	if year < 1 {
		return Period{}, fmt.Errorf("%w: year %d", domain.ErrInvalidPeriod, year)
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Kind:  PeriodKindYear,
		Start: start,
		End:   start.AddDate(1, 0, 0),
		Year:  year,
	}, nil
}

// RangeOf returns an explicit [start, end) period.
func RangeOf(start, end time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, fmt.Errorf("%w: zero boundary date", domain.ErrInvalidPeriod)
	}
	start = dateOnly(start)
	end = dateOnly(end)
	if !end.After(start) {
		return Period{}, fmt.Errorf("%w: end %s not after start %s",
			domain.ErrInvalidPeriod, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return Period{Kind: PeriodKindRange, Start: start, End: end}, nil
}

// MonthsEndingAt returns n consecutive month periods in chronological
// order, the last one being (year, month).
func MonthsEndingAt(year, month, n int) ([]Period, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: month count %d", domain.ErrInvalidPeriod, n)
	}
	periods := make([]Period, n)
	y, m := year, month
	for i := n - 1; i >= 0; i-- {
		p, err := MonthOf(y, m)
		if err != nil {
			return nil, err
		}
		periods[i] = p
		y, m = previousMonth(y, m)
	}
	return periods, nil
}

// Contains reports whether the calendar date of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(p.Start) && d.Before(p.End)
}

// Label returns a human-readable name for the period.
func (p Period) Label() string {
	switch p.Kind {
	case PeriodKindMonth:
		return p.Start.Format("January 2006")
	case PeriodKindYear:
		return p.Start.Format("2006")
	default:
		return fmt.Sprintf("%s to %s", p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
	}
}

func previousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// dateOnly strips the time component, keeping the calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
