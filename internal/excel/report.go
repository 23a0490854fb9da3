// Package excel renders report documents as xlsx workbooks.
package excel

import (
	"fmt"
	"sort"

	"github.com/mbruton/pennywise/internal/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const amountFormat = "#,##0.00"

// MonthlyXLSX renders a monthly report as an xlsx workbook.
func MonthlyXLSX(doc *report.MonthlyReport) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "pennywise",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	writeSummarySheet(xlsx, sheet, doc.Label, doc.TotalIncome, doc.TotalExpense, doc.Net)
	_ = xlsx.SetSheetName(sheet, "Summary")

	if _, err := xlsx.NewSheet("Categories"); err != nil {
		return nil, err
	}
	writeCategorySheet(xlsx, "Categories", doc.IncomeByCategory, doc.ExpenseByCategory)

	if len(doc.BudgetStatuses) > 0 {
		if _, err := xlsx.NewSheet("Budgets"); err != nil {
			return nil, err
		}
		writeBudgetSheet(xlsx, "Budgets", doc.BudgetStatuses)
	}

	if len(doc.Trend) > 0 {
		if _, err := xlsx.NewSheet("Trend"); err != nil {
			return nil, err
		}
		writeTrendSheet(xlsx, "Trend", doc.Trend)
	}

	xlsx.SetActiveSheet(0)

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YearlyXLSX renders a yearly report as an xlsx workbook.
func YearlyXLSX(doc *report.YearlyReport) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "pennywise",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	writeSummarySheet(xlsx, sheet, fmt.Sprintf("%d", doc.Year), doc.TotalIncome, doc.TotalExpense, doc.Net)
	_ = xlsx.SetSheetName(sheet, "Summary")

	if _, err := xlsx.NewSheet("Categories"); err != nil {
		return nil, err
	}
	writeCategorySheet(xlsx, "Categories", doc.IncomeByCategory, doc.ExpenseByCategory)

	if len(doc.BudgetStatuses) > 0 {
		if _, err := xlsx.NewSheet("Budgets"); err != nil {
			return nil, err
		}
		writeBudgetSheet(xlsx, "Budgets", doc.BudgetStatuses)
	}

	if _, err := xlsx.NewSheet("Months"); err != nil {
		return nil, err
	}
	writeTrendSheet(xlsx, "Months", doc.Months)

	xlsx.SetActiveSheet(0)

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(xlsx *excelize.File, sheet, label string, income, expense, net decimal.Decimal) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 30)
	_ = xlsx.SetColWidth(sheet, "B", "B", 14)

	setHeader(xlsx, sheet, 1, label, "")
	setAmountRow(xlsx, sheet, 3, "Total income", income)
	setAmountRow(xlsx, sheet, 4, "Total expenses", expense)
	setAmountRow(xlsx, sheet, 5, "Net", net)
}

func writeCategorySheet(xlsx *excelize.File, sheet string, incomeByCategory, expenseByCategory map[string]decimal.Decimal) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 30)
	_ = xlsx.SetColWidth(sheet, "B", "B", 14)

	row := 1
	setHeader(xlsx, sheet, row, "Income by category", "Amount")
	row++
	for _, name := range sortedKeys(incomeByCategory) {
		setAmountRow(xlsx, sheet, row, name, incomeByCategory[name])
		row++
	}
	row++

	setHeader(xlsx, sheet, row, "Expenses by category", "Amount")
	row++
	for _, name := range sortedKeys(expenseByCategory) {
		setAmountRow(xlsx, sheet, row, name, expenseByCategory[name])
		row++
	}
}

func writeBudgetSheet(xlsx *excelize.File, sheet string, statuses []report.BudgetStatus) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 30)
	_ = xlsx.SetColWidth(sheet, "B", "F", 14)

	headers := []string{"Category", "Period", "Budgeted", "Actual", "Remaining", "Alert"}
	for i, h := range headers {
		_ = xlsx.SetCellValue(sheet, cell('A'+rune(i), 1), h)
	}
	style, _ := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = xlsx.SetCellStyle(sheet, cell('A', 1), cell('F', 1), style)

	amountStyle, _ := xlsx.NewStyle(&excelize.Style{CustomNumFmt: ptr(amountFormat)})
	for i, s := range statuses {
		row := i + 2
		_ = xlsx.SetCellValue(sheet, cell('A', row), s.Category)
		_ = xlsx.SetCellValue(sheet, cell('B', row), string(s.Period))
		_ = xlsx.SetCellValue(sheet, cell('C', row), s.Budgeted.InexactFloat64())
		_ = xlsx.SetCellValue(sheet, cell('D', row), s.Actual.InexactFloat64())
		_ = xlsx.SetCellValue(sheet, cell('E', row), s.Remaining.InexactFloat64())
		_ = xlsx.SetCellValue(sheet, cell('F', row), string(s.Alert))
		_ = xlsx.SetCellStyle(sheet, cell('C', row), cell('E', row), amountStyle)
	}
}

func writeTrendSheet(xlsx *excelize.File, sheet string, points []report.TrendPoint) {
	_ = xlsx.SetColWidth(sheet, "A", "D", 14)

	headers := []string{"Month", "Income", "Expenses", "Net"}
	for i, h := range headers {
		_ = xlsx.SetCellValue(sheet, cell('A'+rune(i), 1), h)
	}
	style, _ := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = xlsx.SetCellStyle(sheet, cell('A', 1), cell('D', 1), style)

	amountStyle, _ := xlsx.NewStyle(&excelize.Style{CustomNumFmt: ptr(amountFormat)})
	for i, p := range points {
		row := i + 2
		_ = xlsx.SetCellValue(sheet, cell('A', row), fmt.Sprintf("%04d-%02d", p.Year, p.Month))
		_ = xlsx.SetCellValue(sheet, cell('B', row), p.Income.InexactFloat64())
		_ = xlsx.SetCellValue(sheet, cell('C', row), p.Expense.InexactFloat64())
		_ = xlsx.SetCellValue(sheet, cell('D', row), p.Net.InexactFloat64())
		_ = xlsx.SetCellStyle(sheet, cell('B', row), cell('D', row), amountStyle)
	}

	// Total row summing the series
	totalRow := len(points) + 2
	_ = xlsx.SetCellValue(sheet, cell('A', totalRow), "Total")
	for col := 'B'; col <= 'D'; col++ {
		_ = xlsx.SetCellFormula(sheet, cell(col, totalRow), fmt.Sprintf("SUM(%c2:%c%d)", col, col, totalRow-1))
	}
	boldAmount, _ := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: ptr(amountFormat)})
	_ = xlsx.SetCellStyle(sheet, cell('B', totalRow), cell('D', totalRow), boldAmount)

	lastDataRow := len(points) + 1
	series := make([]excelize.ChartSeries, 0, 3)
	for col := 'B'; col <= 'D'; col++ {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%c$1", sheet, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, lastDataRow),
			Values:     fmt.Sprintf("%s!$%c$2:$%c$%d", sheet, col, col, lastDataRow),
		})
	}
	_ = xlsx.AddChart(sheet, cell('F', 2), &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: "Income vs expenses"}},
	})
}

func setHeader(xlsx *excelize.File, sheet string, row int, a, b string) {
	_ = xlsx.SetCellValue(sheet, cell('A', row), a)
	if b != "" {
		_ = xlsx.SetCellValue(sheet, cell('B', row), b)
	}
	style, _ := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('B', row), style)
}

func setAmountRow(xlsx *excelize.File, sheet string, row int, label string, amount decimal.Decimal) {
	_ = xlsx.SetCellValue(sheet, cell('A', row), label)
	_ = xlsx.SetCellValue(sheet, cell('B', row), amount.InexactFloat64())
	style, _ := xlsx.NewStyle(&excelize.Style{CustomNumFmt: ptr(amountFormat)})
	_ = xlsx.SetCellStyle(sheet, cell('B', row), cell('B', row), style)
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func ptr(s string) *string {
	return &s
}
