package report

import (
	"errors"
	"testing"
	"time"

	"github.com/mbruton/pennywise/internal/domain"
)

func TestMonthOf_Boundaries(t *testing.T) {
	p, err := MonthOf(2025, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !p.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Expected first day of month to be inside the period")
	}
	if !p.Contains(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Error("Expected last day of month to be inside the period")
	}
	if p.Contains(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Expected first day of next month to be outside the period")
	}
	if p.Contains(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Error("Expected last day of previous month to be outside the period")
	}
}

func TestMonthOf_InvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		_, err := MonthOf(2025, month)
		if !errors.Is(err, domain.ErrInvalidPeriod) {
			t.Errorf("Expected ErrInvalidPeriod for month %d, got %v", month, err)
		}
	}
}

func TestYearOf_Boundaries(t *testing.T) {
	p, err := YearOf(2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !p.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Expected Jan 1 to be inside the year")
	}
	if !p.Contains(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Error("Expected Dec 31 to be inside the year")
	}
	if p.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Expected next Jan 1 to be outside the year")
	}
}

func TestRangeOf_EndNotAfterStart(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := RangeOf(start, start)
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod for empty range, got %v", err)
	}

	_, err = RangeOf(start, start.AddDate(0, 0, -1))
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod for inverted range, got %v", err)
	}
}

func TestRangeOf_ZeroDate(t *testing.T) {
	_, err := RangeOf(time.Time{}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod for zero start, got %v", err)
	}
}

func TestRangeOf_IgnoresTimeComponent(t *testing.T) {
	p, err := RangeOf(
		time.Date(2025, 1, 1, 15, 30, 0, 0, time.UTC),
		time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !p.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Expected midnight on the start date to be inside the range")
	}
}

func TestMonthsEndingAt_ChronologicalAcrossYearBoundary(t *testing.T) {
	periods, err := MonthsEndingAt(2025, 2, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(periods) != 6 {
		t.Fatalf("Expected 6 periods, got %d", len(periods))
	}

	want := [][2]int{{2024, 9}, {2024, 10}, {2024, 11}, {2024, 12}, {2025, 1}, {2025, 2}}
	for i, p := range periods {
		if p.Year != want[i][0] || p.Month != want[i][1] {
			t.Errorf("Period %d: expected %d-%02d, got %d-%02d", i, want[i][0], want[i][1], p.Year, p.Month)
		}
	}
}

func TestMonthsEndingAt_InvalidCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := MonthsEndingAt(2025, 1, n)
		if !errors.Is(err, domain.ErrInvalidPeriod) {
			t.Errorf("Expected ErrInvalidPeriod for n=%d, got %v", n, err)
		}
	}
}
