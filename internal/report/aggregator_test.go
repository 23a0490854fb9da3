package report

import (
	"errors"
	"testing"
	"time"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/shopspring/decimal"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func expenseTx(id int64, amount, category string, txDate time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:          id,
		Type:        domain.TransactionTypeExpense,
		Amount:      decimal.RequireFromString(amount),
		Description: "test expense",
		Category:    category,
		Date:        txDate,
	}
}

func incomeTx(id int64, amount, category string, txDate time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:          id,
		Type:        domain.TransactionTypeIncome,
		Amount:      decimal.RequireFromString(amount),
		Description: "test income",
		Category:    category,
		Date:        txDate,
	}
}

func testCategories() []*domain.Category {
	return []*domain.Category{
		{ID: 1, Type: domain.TransactionTypeExpense, Name: "Food"},
		{ID: 2, Type: domain.TransactionTypeExpense, Name: "Transport"},
		{ID: 3, Type: domain.TransactionTypeIncome, Name: "Salary"},
	}
}

func TestAggregate_SumsAndNet(t *testing.T) {
	p, _ := MonthOf(2025, 1)
	txns := []*domain.Transaction{
		expenseTx(1, "400", "Food", date(2025, 1, 10)),
		expenseTx(2, "200", "Food", date(2025, 1, 20)),
		incomeTx(3, "3000", "Salary", date(2025, 1, 1)),
	}

	var agg *PeriodAggregate
	agg, err := Aggregate(txns, testCategories(), p)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !agg.TotalExpense.Equal(decimal.RequireFromString("600")) {
		t.Errorf("Expected total expense 600, got %s", agg.TotalExpense)
	}
	if !agg.TotalIncome.Equal(decimal.RequireFromString("3000")) {
		t.Errorf("Expected total income 3000, got %s", agg.TotalIncome)
	}
	if !agg.Net.Equal(decimal.RequireFromString("2400")) {
		t.Errorf("Expected net 2400, got %s", agg.Net)
	}
	if !agg.ExpenseByCategory["Food"].Equal(decimal.RequireFromString("600")) {
		t.Errorf("Expected Food total 600, got %s", agg.ExpenseByCategory["Food"])
	}
	if agg.IncomeCount != 1 || agg.ExpenseCount != 2 {
		t.Errorf("Expected counts 1/2, got %d/%d", agg.IncomeCount, agg.ExpenseCount)
	}
}

func TestAggregate_DecimalExactAccumulation(t *testing.T) {
	// 0.10 summed a hundred times must be exactly 10, not 9.999...
	p, _ := MonthOf(2025, 1)
	txns := make([]*domain.Transaction, 0, 100)
	for i := 0; i < 100; i++ {
		txns = append(txns, expenseTx(int64(i+1), "0.10", "Food", date(2025, 1, 1+i%28)))
	}

	agg, err := Aggregate(txns, testCategories(), p)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !agg.TotalExpense.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("Expected exactly 10.00, got %s", agg.TotalExpense)
	}
	if !agg.TotalIncome.Sub(agg.TotalExpense).Equal(agg.Net) {
		t.Errorf("Expected income - expense = net exactly, got %s", agg.Net)
	}
}

func TestAggregate_EmptyPeriod(t *testing.T) {
	p, _ := MonthOf(2030, 6)
	txns := []*domain.Transaction{
		expenseTx(1, "50", "Food", date(2025, 1, 10)),
	}

	agg, err := Aggregate(txns, testCategories(), p)
	if err != nil {
		t.Fatalf("Expected no error for empty period, got %v", err)
	}
	if !agg.TotalIncome.IsZero() || !agg.TotalExpense.IsZero() || !agg.Net.IsZero() {
		t.Errorf("Expected all-zero aggregate, got income=%s expense=%s net=%s",
			agg.TotalIncome, agg.TotalExpense, agg.Net)
	}
	if len(agg.IncomeByCategory) != 0 || len(agg.ExpenseByCategory) != 0 {
		t.Error("Expected empty category maps for empty period")
	}
}

func TestAggregate_FirstOfMonthBelongsToThatMonth(t *testing.T) {
	// Inserted out of chronological order on purpose.
	txns := []*domain.Transaction{
		expenseTx(2, "75", "Food", date(2025, 2, 1)),
		expenseTx(1, "25", "Food", date(2025, 1, 31)),
	}

	jan, _ := MonthOf(2025, 1)
	feb, _ := MonthOf(2025, 2)

	janAgg, err := Aggregate(txns, testCategories(), jan)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	febAgg, err := Aggregate(txns, testCategories(), feb)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !janAgg.TotalExpense.Equal(decimal.RequireFromString("25")) {
		t.Errorf("Expected January expense 25, got %s", janAgg.TotalExpense)
	}
	if !febAgg.TotalExpense.Equal(decimal.RequireFromString("75")) {
		t.Errorf("Expected February expense 75, got %s", febAgg.TotalExpense)
	}
}

func TestAggregate_MalformedRecords(t *testing.T) {
	p, _ := MonthOf(2025, 1)

	tests := []struct {
		name string
		tx   *domain.Transaction
	}{
		{"zero amount", &domain.Transaction{ID: 1, Type: domain.TransactionTypeExpense, Amount: decimal.Zero, Category: "Food", Date: date(2025, 1, 5)}},
		{"negative amount", expenseTx(2, "-10", "Food", date(2025, 1, 5))},
		{"missing category", &domain.Transaction{ID: 3, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(10), Date: date(2025, 1, 5)}},
		{"missing date", &domain.Transaction{ID: 4, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(10), Category: "Food"}},
		{"unknown type", &domain.Transaction{ID: 5, Type: "transfer", Amount: decimal.NewFromInt(10), Category: "Food", Date: date(2025, 1, 5)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Aggregate([]*domain.Transaction{tc.tx}, testCategories(), p)
			if !errors.Is(err, domain.ErrMalformedRecord) {
				t.Errorf("Expected ErrMalformedRecord, got %v", err)
			}
		})
	}
}

func TestAggregate_MalformedRecordOutsidePeriodStillFails(t *testing.T) {
	// Corrupt data anywhere in the snapshot poisons the totals, so the
	// whole call fails even when the bad record is outside the period.
	p, _ := MonthOf(2025, 1)
	txns := []*domain.Transaction{
		expenseTx(1, "10", "Food", date(2025, 1, 5)),
		expenseTx(2, "-5", "Food", date(2024, 6, 5)),
	}

	_, err := Aggregate(txns, testCategories(), p)
	if !errors.Is(err, domain.ErrMalformedRecord) {
		t.Errorf("Expected ErrMalformedRecord, got %v", err)
	}
}

func TestAggregate_UnknownCategoryGoesToUncategorized(t *testing.T) {
	p, _ := MonthOf(2025, 1)
	txns := []*domain.Transaction{
		expenseTx(1, "30", "Misc", date(2025, 1, 5)),
		expenseTx(2, "20", "Food", date(2025, 1, 6)),
	}

	agg, err := Aggregate(txns, testCategories(), p)
	if err != nil {
		t.Fatalf("Expected report to succeed, got %v", err)
	}

	if !agg.ExpenseByCategory[UncategorizedBucket].Equal(decimal.RequireFromString("30")) {
		t.Errorf("Expected 30 under %s, got %s", UncategorizedBucket, agg.ExpenseByCategory[UncategorizedBucket])
	}
	if !agg.TotalExpense.Equal(decimal.RequireFromString("50")) {
		t.Errorf("Expected total expense 50, got %s", agg.TotalExpense)
	}

	if len(agg.Notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(agg.Notes))
	}
	if agg.Notes[0].Kind != NoteUnknownCategory || agg.Notes[0].Category != "Misc" {
		t.Errorf("Expected unknown_category note for Misc, got %+v", agg.Notes[0])
	}
}

func TestAggregate_TypeMismatchTreatedAsUnknown(t *testing.T) {
	// "Salary" exists only as an income category; an expense charged to it
	// has no matching category of its own kind.
	p, _ := MonthOf(2025, 1)
	txns := []*domain.Transaction{
		expenseTx(1, "40", "Salary", date(2025, 1, 5)),
	}

	agg, err := Aggregate(txns, testCategories(), p)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !agg.ExpenseByCategory[UncategorizedBucket].Equal(decimal.RequireFromString("40")) {
		t.Errorf("Expected mismatch to land in %s, got map %v", UncategorizedBucket, agg.ExpenseByCategory)
	}
}

func TestTrendSeries_LengthAndZeroFill(t *testing.T) {
	txns := []*domain.Transaction{
		expenseTx(1, "100", "Food", date(2025, 1, 15)),
		expenseTx(2, "300", "Food", date(2025, 3, 15)),
	}

	points, err := TrendSeries(txns, testCategories(), 2025, 3, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(points) != 6 {
		t.Fatalf("Expected exactly 6 points, got %d", len(points))
	}

	// Chronological: Oct 2024 .. Mar 2025.
	if points[0].Year != 2024 || points[0].Month != 10 {
		t.Errorf("Expected first point 2024-10, got %d-%02d", points[0].Year, points[0].Month)
	}
	if points[5].Year != 2025 || points[5].Month != 3 {
		t.Errorf("Expected last point 2025-03, got %d-%02d", points[5].Year, points[5].Month)
	}

	// Months with no activity carry zeroes, not gaps.
	if !points[1].Expense.IsZero() || !points[1].Income.IsZero() {
		t.Errorf("Expected zero-filled point, got income=%s expense=%s", points[1].Income, points[1].Expense)
	}
	if !points[3].Expense.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Expected January expense 100, got %s", points[3].Expense)
	}
	if !points[5].Expense.Equal(decimal.RequireFromString("300")) {
		t.Errorf("Expected March expense 300, got %s", points[5].Expense)
	}
}

func TestTrendSeries_InvalidCount(t *testing.T) {
	_, err := TrendSeries(nil, nil, 2025, 1, 0)
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}
