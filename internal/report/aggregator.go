package report

import (
	"fmt"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/shopspring/decimal"
)

// PeriodAggregate holds the sums for one period. Categories with zero
// activity in the period do not appear in the maps.
type PeriodAggregate struct {
	Period            Period
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Net               decimal.Decimal
	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
	IncomeCount       int
	ExpenseCount      int
	Notes             []Note
}

type categoryKey struct {
	categoryType domain.TransactionType
	name         string
}

// Aggregate sums the transactions falling inside the period. All amounts
// accumulate as decimals; a period with no transactions yields an all-zero
// aggregate. A transaction violating a field invariant fails the whole call
// with ErrMalformedRecord; a transaction whose category is absent from the
// snapshot is counted under UncategorizedBucket and noted.
func Aggregate(transactions []*domain.Transaction, categories []*domain.Category, p Period) (*PeriodAggregate, error) {
	known := make(map[categoryKey]bool, len(categories))
	for _, c := range categories {
		known[categoryKey{c.Type, c.Name}] = true
	}

	agg := &PeriodAggregate{
		Period:            p,
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		Net:               decimal.Zero,
		IncomeByCategory:  make(map[string]decimal.Decimal),
		ExpenseByCategory: make(map[string]decimal.Decimal),
	}

	noted := make(map[string]bool)
	for _, t := range transactions {
		if err := validateTransaction(t); err != nil {
			return nil, err
		}
		if !p.Contains(t.Date) {
			continue
		}

		bucket := t.Category
		if !known[categoryKey{t.Type, t.Category}] {
			bucket = UncategorizedBucket
			if !noted[t.Category] {
				noted[t.Category] = true
				agg.Notes = append(agg.Notes, Note{
					Kind:     NoteUnknownCategory,
					Category: t.Category,
					Message:  fmt.Sprintf("category %q has no matching %s category; counted as %s", t.Category, t.Type, UncategorizedBucket),
				})
			}
		}

		switch t.Type {
		case domain.TransactionTypeIncome:
			agg.TotalIncome = agg.TotalIncome.Add(t.Amount)
			agg.IncomeByCategory[bucket] = agg.IncomeByCategory[bucket].Add(t.Amount)
			agg.IncomeCount++
		case domain.TransactionTypeExpense:
			agg.TotalExpense = agg.TotalExpense.Add(t.Amount)
			agg.ExpenseByCategory[bucket] = agg.ExpenseByCategory[bucket].Add(t.Amount)
			agg.ExpenseCount++
		}
	}

	agg.Net = agg.TotalIncome.Sub(agg.TotalExpense)
	return agg, nil
}

// TrendSeries returns exactly n month entries ending at (year, month), in
// chronological order. Months with no transactions appear with zero totals.
func TrendSeries(transactions []*domain.Transaction, categories []*domain.Category, year, month, n int) ([]TrendPoint, error) {
	periods, err := MonthsEndingAt(year, month, n)
	if err != nil {
		return nil, err
	}

	points := make([]TrendPoint, 0, n)
	for _, p := range periods {
		agg, err := Aggregate(transactions, categories, p)
		if err != nil {
			return nil, err
		}
		points = append(points, TrendPoint{
			Year:    p.Year,
			Month:   p.Month,
			Income:  agg.TotalIncome,
			Expense: agg.TotalExpense,
			Net:     agg.Net,
		})
	}
	return points, nil
}

func validateTransaction(t *domain.Transaction) error {
	if t == nil {
		return fmt.Errorf("%w: nil transaction", domain.ErrMalformedRecord)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: transaction %d has type %q", domain.ErrMalformedRecord, t.ID, t.Type)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: transaction %d has non-positive amount %s", domain.ErrMalformedRecord, t.ID, t.Amount)
	}
	if t.Category == "" {
		return fmt.Errorf("%w: transaction %d has no category", domain.ErrMalformedRecord, t.ID)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction %d has no date", domain.ErrMalformedRecord, t.ID)
	}
	return nil
}
