package report

import (
	"fmt"
	"sort"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// EvaluateBudget classifies actual spending against a budget limit.
// Thresholds are compared without division so the 80% and 100% boundaries
// are exact: warning covers [80%, 100%), over_budget covers >= 100%.
func EvaluateBudget(b *domain.Budget, actual decimal.Decimal) BudgetStatus {
	status := BudgetStatus{
		Category:  b.Category,
		Period:    b.Period,
		Budgeted:  b.Amount,
		Actual:    actual,
		Remaining: b.Amount.Sub(actual),
		Alert:     AlertNone,
	}

	if b.Amount.IsPositive() {
		pct := actual.Div(b.Amount).Mul(hundred)
		status.PercentUsed = &pct

		switch {
		case actual.Cmp(b.Amount) >= 0:
			status.Alert = AlertOverBudget
		case actual.Mul(hundred).Cmp(b.Amount.Mul(warningThreshold)) >= 0:
			status.Alert = AlertWarning
		}
	}

	return status
}

type budgetKey struct {
	category string
	period   domain.BudgetPeriod
}

// ResolveBudgets collapses duplicate (category, period) budgets to the most
// recently updated one and reports each collision as a note. The result is
// ordered by category, monthly before yearly.
func ResolveBudgets(budgets []*domain.Budget) ([]*domain.Budget, []Note) {
	chosen := make(map[budgetKey]*domain.Budget)
	duplicated := make(map[budgetKey]bool)
	for _, b := range budgets {
		key := budgetKey{b.Category, b.Period}
		current, ok := chosen[key]
		if !ok {
			chosen[key] = b
			continue
		}
		duplicated[key] = true
		if supersedes(b, current) {
			chosen[key] = b
		}
	}

	resolved := make([]*domain.Budget, 0, len(chosen))
	for _, b := range chosen {
		resolved = append(resolved, b)
	}
	sort.Slice(resolved, func(i, j int) bool {
		if resolved[i].Category != resolved[j].Category {
			return resolved[i].Category < resolved[j].Category
		}
		return resolved[i].Period < resolved[j].Period
	})

	var notes []Note
	for _, b := range resolved {
		if duplicated[budgetKey{b.Category, b.Period}] {
			notes = append(notes, Note{
				Kind:     NoteAmbiguousBudget,
				Category: b.Category,
				Message:  fmt.Sprintf("multiple %s budgets for %q; using the most recently updated", b.Period, b.Category),
			})
		}
	}
	return resolved, notes
}

// supersedes reports whether a should be preferred over b when both target
// the same (category, period). Most recent update wins; ID breaks ties.
func supersedes(a, b *domain.Budget) bool {
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
