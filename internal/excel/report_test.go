package excel

import (
	"bytes"
	"testing"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/mbruton/pennywise/internal/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleMonthlyReport() *report.MonthlyReport {
	return &report.MonthlyReport{
		Year:         2025,
		Month:        1,
		Label:        "January 2025",
		TotalIncome:  decimal.RequireFromString("3000"),
		TotalExpense: decimal.RequireFromString("600"),
		Net:          decimal.RequireFromString("2400"),
		IncomeByCategory: map[string]decimal.Decimal{
			"Salary": decimal.RequireFromString("3000"),
		},
		ExpenseByCategory: map[string]decimal.Decimal{
			"Food": decimal.RequireFromString("600"),
		},
		BudgetStatuses: []report.BudgetStatus{
			{
				Category:  "Food",
				Period:    domain.BudgetPeriodMonthly,
				Budgeted:  decimal.RequireFromString("500"),
				Actual:    decimal.RequireFromString("600"),
				Remaining: decimal.RequireFromString("-100"),
				Alert:     report.AlertOverBudget,
			},
		},
		Trend: []report.TrendPoint{
			{Year: 2024, Month: 12, Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero},
			{Year: 2025, Month: 1, Income: decimal.RequireFromString("3000"), Expense: decimal.RequireFromString("600"), Net: decimal.RequireFromString("2400")},
		},
	}
}

func TestMonthlyXLSX(t *testing.T) {
	data, err := MonthlyXLSX(sampleMonthlyReport())
	if err != nil {
		t.Fatalf("MonthlyXLSX() error = %v", err)
	}

	xlsx, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("rendered workbook does not open: %v", err)
	}
	defer xlsx.Close()

	for _, sheet := range []string{"Summary", "Categories", "Budgets", "Trend"} {
		if idx, _ := xlsx.GetSheetIndex(sheet); idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}

	label, err := xlsx.GetCellValue("Summary", "A1")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if label != "January 2025" {
		t.Errorf("Summary A1 = %q, want January 2025", label)
	}

	alert, err := xlsx.GetCellValue("Budgets", "F2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if alert != "over_budget" {
		t.Errorf("Budgets F2 = %q, want over_budget", alert)
	}
}

func TestYearlyXLSX(t *testing.T) {
	doc := &report.YearlyReport{
		Year:         2025,
		TotalIncome:  decimal.RequireFromString("36000"),
		TotalExpense: decimal.RequireFromString("7200"),
		Net:          decimal.RequireFromString("28800"),
		Months: []report.TrendPoint{
			{Year: 2025, Month: 1, Income: decimal.RequireFromString("3000"), Expense: decimal.RequireFromString("600"), Net: decimal.RequireFromString("2400")},
		},
	}

	data, err := YearlyXLSX(doc)
	if err != nil {
		t.Fatalf("YearlyXLSX() error = %v", err)
	}

	xlsx, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("rendered workbook does not open: %v", err)
	}
	defer xlsx.Close()

	if idx, _ := xlsx.GetSheetIndex("Months"); idx < 0 {
		t.Error("missing sheet Months")
	}
}
