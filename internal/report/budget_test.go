package report

import (
	"testing"
	"time"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/shopspring/decimal"
)

func monthlyBudget(category, amount string) *domain.Budget {
	return &domain.Budget{
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Period:   domain.BudgetPeriodMonthly,
	}
}

func TestEvaluateBudget_AlertBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		actual string
		want   AlertLevel
	}{
		{"well under", "300", AlertNone},
		{"just under warning", "399.995", AlertNone},
		{"79.999 percent", "399.999999", AlertNone},
		{"exactly 80 percent", "400.00", AlertWarning},
		{"inside warning band", "450", AlertWarning},
		{"just under limit", "499.99", AlertWarning},
		{"exactly 100 percent", "500.00", AlertOverBudget},
		{"over limit", "600", AlertOverBudget},
	}

	budget := monthlyBudget("Food", "500")
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status := EvaluateBudget(budget, decimal.RequireFromString(tc.actual))
			if status.Alert != tc.want {
				t.Errorf("Expected alert %s for actual %s, got %s", tc.want, tc.actual, status.Alert)
			}
		})
	}
}

func TestEvaluateBudget_PercentUsed(t *testing.T) {
	status := EvaluateBudget(monthlyBudget("Food", "500"), decimal.RequireFromString("600"))

	if status.PercentUsed == nil {
		t.Fatal("Expected percent used to be set")
	}
	if !status.PercentUsed.Equal(decimal.RequireFromString("120")) {
		t.Errorf("Expected 120%%, got %s", status.PercentUsed)
	}
	if !status.Remaining.Equal(decimal.RequireFromString("-100")) {
		t.Errorf("Expected remaining -100, got %s", status.Remaining)
	}
}

func TestEvaluateBudget_ZeroBudgetOmitsPercent(t *testing.T) {
	status := EvaluateBudget(monthlyBudget("Food", "0"), decimal.RequireFromString("50"))

	if status.PercentUsed != nil {
		t.Errorf("Expected no percent for zero budget, got %s", status.PercentUsed)
	}
	if status.Alert != AlertNone {
		t.Errorf("Expected alert none for zero budget, got %s", status.Alert)
	}
}

func TestEvaluateBudget_ZeroActual(t *testing.T) {
	status := EvaluateBudget(monthlyBudget("Food", "500"), decimal.Zero)

	if status.Alert != AlertNone {
		t.Errorf("Expected alert none, got %s", status.Alert)
	}
	if status.PercentUsed == nil || !status.PercentUsed.IsZero() {
		t.Errorf("Expected 0%% used, got %v", status.PercentUsed)
	}
}

func TestResolveBudgets_MostRecentlyUpdatedWins(t *testing.T) {
	older := &domain.Budget{
		ID:        1,
		Category:  "Food",
		Amount:    decimal.NewFromInt(500),
		Period:    domain.BudgetPeriodMonthly,
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &domain.Budget{
		ID:        2,
		Category:  "Food",
		Amount:    decimal.NewFromInt(800),
		Period:    domain.BudgetPeriodMonthly,
		UpdatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	resolved, notes := ResolveBudgets([]*domain.Budget{older, newer})

	if len(resolved) != 1 {
		t.Fatalf("Expected 1 resolved budget, got %d", len(resolved))
	}
	if resolved[0].ID != 2 {
		t.Errorf("Expected the most recently updated budget (ID 2), got ID %d", resolved[0].ID)
	}

	if len(notes) != 1 {
		t.Fatalf("Expected 1 ambiguity note, got %d", len(notes))
	}
	if notes[0].Kind != NoteAmbiguousBudget || notes[0].Category != "Food" {
		t.Errorf("Expected ambiguous_budget note for Food, got %+v", notes[0])
	}
}

func TestResolveBudgets_EqualTimestampsFallBackToID(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &domain.Budget{ID: 1, Category: "Food", Period: domain.BudgetPeriodMonthly, UpdatedAt: ts, CreatedAt: ts}
	b := &domain.Budget{ID: 2, Category: "Food", Period: domain.BudgetPeriodMonthly, UpdatedAt: ts, CreatedAt: ts}

	resolved, _ := ResolveBudgets([]*domain.Budget{a, b})
	if resolved[0].ID != 2 {
		t.Errorf("Expected higher ID to win the tie, got ID %d", resolved[0].ID)
	}
}

func TestResolveBudgets_DistinctPeriodsAreNotAmbiguous(t *testing.T) {
	monthly := &domain.Budget{ID: 1, Category: "Food", Period: domain.BudgetPeriodMonthly}
	yearly := &domain.Budget{ID: 2, Category: "Food", Period: domain.BudgetPeriodYearly}

	resolved, notes := ResolveBudgets([]*domain.Budget{monthly, yearly})

	if len(resolved) != 2 {
		t.Fatalf("Expected 2 resolved budgets, got %d", len(resolved))
	}
	if len(notes) != 0 {
		t.Errorf("Expected no notes, got %d", len(notes))
	}
	if resolved[0].Period != domain.BudgetPeriodMonthly {
		t.Errorf("Expected monthly first in resolved order, got %s", resolved[0].Period)
	}
}
