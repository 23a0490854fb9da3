package report

import (
	"fmt"
	"sort"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	trendMonths          = 6
	topExpenseCategories = 5
)

// Builder composes aggregates and budget statuses into report documents.
// It holds no state: every document is a pure function of the snapshot and
// the requested period, so rebuilding from the same snapshot yields an
// identical document.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Monthly builds the report document for one calendar month.
func (b *Builder) Monthly(snap *domain.Snapshot, year, month int) (*MonthlyReport, error) {
	p, err := MonthOf(year, month)
	if err != nil {
		return nil, err
	}

	agg, err := Aggregate(snap.Transactions, snap.Categories, p)
	if err != nil {
		return nil, err
	}

	resolved, budgetNotes := ResolveBudgets(snap.Budgets)
	statuses := evaluateAll(resolved, domain.BudgetPeriodMonthly, agg.ExpenseByCategory)

	periods, err := MonthsEndingAt(year, month, trendMonths)
	if err != nil {
		return nil, err
	}
	trendAggs := make([]*PeriodAggregate, len(periods))
	for i, tp := range periods {
		if trendAggs[i], err = Aggregate(snap.Transactions, snap.Categories, tp); err != nil {
			return nil, err
		}
	}

	trend := make([]TrendPoint, len(trendAggs))
	for i, ta := range trendAggs {
		trend[i] = TrendPoint{
			Year:    ta.Period.Year,
			Month:   ta.Period.Month,
			Income:  ta.TotalIncome,
			Expense: ta.TotalExpense,
			Net:     ta.Net,
		}
	}

	notes := agg.Notes
	notes = append(notes, budgetNotes...)
	for _, ta := range trendAggs {
		notes = append(notes, ta.Notes...)
	}

	var prev *Comparison
	prevYear, prevMonth := previousMonth(year, month)
	if prevYear >= 1 {
		prevPeriod, err := MonthOf(prevYear, prevMonth)
		if err != nil {
			return nil, err
		}
		prevAgg, err := Aggregate(snap.Transactions, snap.Categories, prevPeriod)
		if err != nil {
			return nil, err
		}
		prev = compare(agg, prevAgg)
		notes = append(notes, prevAgg.Notes...)
	}

	return &MonthlyReport{
		Year:              year,
		Month:             month,
		Label:             p.Label(),
		TotalIncome:       agg.TotalIncome,
		TotalExpense:      agg.TotalExpense,
		Net:               agg.Net,
		IncomeByCategory:  agg.IncomeByCategory,
		ExpenseByCategory: agg.ExpenseByCategory,
		BudgetStatuses:    statuses,
		Trend:             trend,
		TopExpenseTrends:  topExpenseTrends(agg.ExpenseByCategory, trendAggs),
		PreviousMonth:     prev,
		Notes:             dedupeNotes(notes),
	}, nil
}

// Yearly builds the report document for one calendar year.
func (b *Builder) Yearly(snap *domain.Snapshot, year int) (*YearlyReport, error) {
	p, err := YearOf(year)
	if err != nil {
		return nil, err
	}

	agg, err := Aggregate(snap.Transactions, snap.Categories, p)
	if err != nil {
		return nil, err
	}

	resolved, budgetNotes := ResolveBudgets(snap.Budgets)
	statuses := evaluateAll(resolved, domain.BudgetPeriodYearly, agg.ExpenseByCategory)

	months := make([]TrendPoint, 0, 12)
	for m := 1; m <= 12; m++ {
		mp, err := MonthOf(year, m)
		if err != nil {
			return nil, err
		}
		magg, err := Aggregate(snap.Transactions, snap.Categories, mp)
		if err != nil {
			return nil, err
		}
		months = append(months, TrendPoint{
			Year:    year,
			Month:   m,
			Income:  magg.TotalIncome,
			Expense: magg.TotalExpense,
			Net:     magg.Net,
		})
	}

	notes := append(agg.Notes, budgetNotes...)

	var prev *Comparison
	if year > 1 {
		prevPeriod, err := YearOf(year - 1)
		if err != nil {
			return nil, err
		}
		prevAgg, err := Aggregate(snap.Transactions, snap.Categories, prevPeriod)
		if err != nil {
			return nil, err
		}
		prev = compare(agg, prevAgg)
	}

	return &YearlyReport{
		Year:              year,
		TotalIncome:       agg.TotalIncome,
		TotalExpense:      agg.TotalExpense,
		Net:               agg.Net,
		IncomeByCategory:  agg.IncomeByCategory,
		ExpenseByCategory: agg.ExpenseByCategory,
		BudgetStatuses:    statuses,
		Months:            months,
		PreviousYear:      prev,
		Notes:             dedupeNotes(notes),
	}, nil
}

// QuickSummary builds the at-a-glance document for the snapshot's as-of
// date: current month, year to date, and every alerting category.
func (b *Builder) QuickSummary(snap *domain.Snapshot) (*QuickSummary, error) {
	if snap.AsOf.IsZero() {
		return nil, fmt.Errorf("%w: snapshot has no as-of date", domain.ErrInvalidPeriod)
	}

	year := snap.AsOf.Year()
	month := int(snap.AsOf.Month())

	monthPeriod, err := MonthOf(year, month)
	if err != nil {
		return nil, err
	}
	yearPeriod, err := YearOf(year)
	if err != nil {
		return nil, err
	}

	var monthAgg, yearAgg *PeriodAggregate
	var g errgroup.Group
	g.Go(func() error {
		var err error
		monthAgg, err = Aggregate(snap.Transactions, snap.Categories, monthPeriod)
		return err
	})
	g.Go(func() error {
		var err error
		yearAgg, err = Aggregate(snap.Transactions, snap.Categories, yearPeriod)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved, budgetNotes := ResolveBudgets(snap.Budgets)
	var alerts []BudgetStatus
	for _, budget := range resolved {
		actuals := monthAgg.ExpenseByCategory
		if budget.Period == domain.BudgetPeriodYearly {
			actuals = yearAgg.ExpenseByCategory
		}
		status := EvaluateBudget(budget, actuals[budget.Category])
		if status.Alert != AlertNone {
			alerts = append(alerts, status)
		}
	}

	notes := append(yearAgg.Notes, monthAgg.Notes...)
	notes = append(notes, budgetNotes...)

	return &QuickSummary{
		AsOf:         dateOnly(snap.AsOf),
		CurrentMonth: PeriodTotals{Label: monthPeriod.Label(), TotalIncome: monthAgg.TotalIncome, TotalExpense: monthAgg.TotalExpense, Net: monthAgg.Net},
		CurrentYear:  PeriodTotals{Label: yearPeriod.Label(), TotalIncome: yearAgg.TotalIncome, TotalExpense: yearAgg.TotalExpense, Net: yearAgg.Net},
		Alerts:       alerts,
		Statistics:   statistics(snap.Transactions),
		Notes:        dedupeNotes(notes),
	}, nil
}

// evaluateAll evaluates every resolved budget of the given period against
// the actuals, including categories with no spending.
func evaluateAll(resolved []*domain.Budget, period domain.BudgetPeriod, actuals map[string]decimal.Decimal) []BudgetStatus {
	var statuses []BudgetStatus
	for _, b := range resolved {
		if b.Period != period {
			continue
		}
		statuses = append(statuses, EvaluateBudget(b, actuals[b.Category]))
	}
	return statuses
}

// topExpenseTrends returns per-month series for the highest-spending
// expense categories of the report period.
func topExpenseTrends(expenseByCategory map[string]decimal.Decimal, trendAggs []*PeriodAggregate) []CategoryTrend {
	names := make([]string, 0, len(expenseByCategory))
	for name := range expenseByCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		cmp := expenseByCategory[names[i]].Cmp(expenseByCategory[names[j]])
		if cmp != 0 {
			return cmp > 0
		}
		return names[i] < names[j]
	})
	if len(names) > topExpenseCategories {
		names = names[:topExpenseCategories]
	}

	trends := make([]CategoryTrend, 0, len(names))
	for _, name := range names {
		points := make([]CategoryTrendPoint, 0, len(trendAggs))
		for _, ta := range trendAggs {
			points = append(points, CategoryTrendPoint{
				Year:   ta.Period.Year,
				Month:  ta.Period.Month,
				Amount: ta.ExpenseByCategory[name],
			})
		}
		trends = append(trends, CategoryTrend{Category: name, Points: points})
	}
	return trends
}

func compare(current, previous *PeriodAggregate) *Comparison {
	if previous.TotalIncome.IsZero() && previous.TotalExpense.IsZero() {
		return nil
	}
	c := &Comparison{
		Label:         previous.Period.Label(),
		IncomeChange:  current.TotalIncome.Sub(previous.TotalIncome),
		ExpenseChange: current.TotalExpense.Sub(previous.TotalExpense),
	}
	if previous.TotalIncome.IsPositive() {
		pct := c.IncomeChange.Div(previous.TotalIncome).Mul(hundred)
		c.IncomePctChange = &pct
	}
	if previous.TotalExpense.IsPositive() {
		pct := c.ExpenseChange.Div(previous.TotalExpense).Mul(hundred)
		c.ExpensePctChange = &pct
	}
	return c
}

func statistics(transactions []*domain.Transaction) Statistics {
	stats := Statistics{
		TotalTransactions: len(transactions),
		Income:            TypeStatistics{Total: decimal.Zero, Average: decimal.Zero},
		Expense:           TypeStatistics{Total: decimal.Zero, Average: decimal.Zero},
	}
	for _, t := range transactions {
		switch t.Type {
		case domain.TransactionTypeIncome:
			stats.Income.Count++
			stats.Income.Total = stats.Income.Total.Add(t.Amount)
		case domain.TransactionTypeExpense:
			stats.Expense.Count++
			stats.Expense.Total = stats.Expense.Total.Add(t.Amount)
		}
	}
	if stats.Income.Count > 0 {
		stats.Income.Average = stats.Income.Total.Div(decimal.NewFromInt(int64(stats.Income.Count)))
	}
	if stats.Expense.Count > 0 {
		stats.Expense.Average = stats.Expense.Total.Div(decimal.NewFromInt(int64(stats.Expense.Count)))
	}
	stats.NetWorth = stats.Income.Total.Sub(stats.Expense.Total)
	return stats
}

func dedupeNotes(notes []Note) []Note {
	if len(notes) == 0 {
		return nil
	}
	type noteKey struct {
		kind     NoteKind
		category string
	}
	seen := make(map[noteKey]bool, len(notes))
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		key := noteKey{n.Kind, n.Category}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
