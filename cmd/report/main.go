package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/mbruton/pennywise/internal/excel"
	"github.com/mbruton/pennywise/internal/report"
	"github.com/mbruton/pennywise/internal/repository/sqlite"
	"github.com/mbruton/pennywise/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	now := time.Now().UTC()

	dbPath := kingpin.Flag("db", "Ledger database path").Default("pennywise.db").String()
	xlsxPath := kingpin.Flag("xlsx", "Also write the report as an xlsx workbook").String()

	cmdMonthly := kingpin.Command("monthly", "Show the monthly report")
	monthlyYear := cmdMonthly.Flag("year", "Report year").Default(fmt.Sprint(now.Year())).Int()
	monthlyMonth := cmdMonthly.Flag("month", "Report month (1-12)").Default(fmt.Sprint(int(now.Month()))).Int()

	cmdYearly := kingpin.Command("yearly", "Show the yearly report")
	yearlyYear := cmdYearly.Flag("year", "Report year").Default(fmt.Sprint(now.Year())).Int()

	kingpin.Command("summary", "Show the at-a-glance summary")

	cmd := kingpin.Parse()

	db, err := sqlite.Open(*dbPath)
	if err != nil {
		kingpin.Fatalf("open database: %v", err)
	}
	defer db.Close()

	reportService := service.NewReportService(
		sqlite.NewTransactionRepository(db),
		sqlite.NewCategoryRepository(db),
		sqlite.NewBudgetRepository(db),
	)

	switch cmd {
	case cmdMonthly.FullCommand():
		doc, err := reportService.MonthlyReport(*monthlyYear, *monthlyMonth)
		if err != nil {
			kingpin.Fatalf("build monthly report: %v", err)
		}
		printMonthly(doc)
		if *xlsxPath != "" {
			writeXLSX(*xlsxPath, func() ([]byte, error) { return excel.MonthlyXLSX(doc) })
		}

	case cmdYearly.FullCommand():
		doc, err := reportService.YearlyReport(*yearlyYear)
		if err != nil {
			kingpin.Fatalf("build yearly report: %v", err)
		}
		printYearly(doc)
		if *xlsxPath != "" {
			writeXLSX(*xlsxPath, func() ([]byte, error) { return excel.YearlyXLSX(doc) })
		}

	default:
		doc, err := reportService.QuickSummary()
		if err != nil {
			kingpin.Fatalf("build summary: %v", err)
		}
		printSummary(doc)
	}
}

func writeXLSX(path string, render func() ([]byte, error)) {
	data, err := render()
	if err != nil {
		kingpin.Fatalf("render xlsx: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		kingpin.Fatalf("write xlsx: %v", err)
	}
	fmt.Printf("\nWrote %s\n", path)
}

func printMonthly(doc *report.MonthlyReport) {
	fmt.Printf("%s\n\n", doc.Label)
	fmtAmount("Total income", doc.TotalIncome.StringFixed(2))
	fmtAmount("Total expenses", doc.TotalExpense.StringFixed(2))
	fmtAmount("Net", doc.Net.StringFixed(2))

	printBreakdown("INCOME BY CATEGORY", doc.IncomeByCategory)
	printBreakdown("EXPENSES BY CATEGORY", doc.ExpenseByCategory)
	printBudgets(doc.BudgetStatuses)

	if doc.PreviousMonth != nil {
		fmt.Printf("\nVS %s\n", doc.PreviousMonth.Label)
		fmtAmount("Income change", doc.PreviousMonth.IncomeChange.StringFixed(2))
		fmtAmount("Expense change", doc.PreviousMonth.ExpenseChange.StringFixed(2))
	}

	printTrend("TREND", doc.Trend)
	printNotes(doc.Notes)
}

func printYearly(doc *report.YearlyReport) {
	fmt.Printf("%d\n\n", doc.Year)
	fmtAmount("Total income", doc.TotalIncome.StringFixed(2))
	fmtAmount("Total expenses", doc.TotalExpense.StringFixed(2))
	fmtAmount("Net", doc.Net.StringFixed(2))

	printBreakdown("INCOME BY CATEGORY", doc.IncomeByCategory)
	printBreakdown("EXPENSES BY CATEGORY", doc.ExpenseByCategory)
	printBudgets(doc.BudgetStatuses)
	printTrend("MONTHS", doc.Months)
	printNotes(doc.Notes)
}

func printSummary(doc *report.QuickSummary) {
	fmt.Printf("As of %s\n", doc.AsOf.Format("2006-01-02"))

	for _, totals := range []report.PeriodTotals{doc.CurrentMonth, doc.CurrentYear} {
		fmt.Printf("\n%s\n", totals.Label)
		fmtAmount("Income", totals.TotalIncome.StringFixed(2))
		fmtAmount("Expenses", totals.TotalExpense.StringFixed(2))
		fmtAmount("Net", totals.Net.StringFixed(2))
	}

	if len(doc.Alerts) > 0 {
		fmt.Printf("\nALERTS\n")
		printBudgets(doc.Alerts)
	}

	fmt.Printf("\nALL TIME\n")
	fmt.Printf("  %-28s %10d\n", "Transactions", doc.Statistics.TotalTransactions)
	fmtAmount("Total income", doc.Statistics.Income.Total.StringFixed(2))
	fmtAmount("Total expenses", doc.Statistics.Expense.Total.StringFixed(2))
	fmtAmount("Net worth", doc.Statistics.NetWorth.StringFixed(2))
	printNotes(doc.Notes)
}

func printBreakdown(hdr string, amounts map[string]decimal.Decimal) {
	if len(amounts) == 0 {
		return
	}
	names := make([]string, 0, len(amounts))
	for name := range amounts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\n%s\n", hdr)
	for _, name := range names {
		fmtAmount(name, amounts[name].StringFixed(2))
	}
}

func printBudgets(statuses []report.BudgetStatus) {
	if len(statuses) == 0 {
		return
	}
	fmt.Printf("\nBUDGETS\n")
	fmt.Printf("  %-20s %-8s %10s %10s %10s  %s\n", "Category", "Period", "Budgeted", "Actual", "Remaining", "Alert")
	for _, s := range statuses {
		alert := ""
		if s.Alert != report.AlertNone {
			alert = string(s.Alert)
		}
		fmt.Printf("  %-20s %-8s %10s %10s %10s  %s\n",
			s.Category, s.Period,
			s.Budgeted.StringFixed(2), s.Actual.StringFixed(2), s.Remaining.StringFixed(2),
			alert)
	}
}

func printTrend(hdr string, points []report.TrendPoint) {
	if len(points) == 0 {
		return
	}
	fmt.Printf("\n%s\n", hdr)
	fmt.Printf("  %-8s %10s %10s %10s\n", "Month", "Income", "Expenses", "Net")
	for _, p := range points {
		fmt.Printf("  %04d-%02d  %10s %10s %10s\n",
			p.Year, p.Month,
			p.Income.StringFixed(2), p.Expense.StringFixed(2), p.Net.StringFixed(2))
	}
}

func printNotes(notes []report.Note) {
	if len(notes) == 0 {
		return
	}
	fmt.Printf("\nNOTES\n")
	for _, n := range notes {
		fmt.Printf("  %s\n", n.Message)
	}
}

func fmtAmount(label, amount string) {
	fmt.Printf("  %-28s %10s\n", label, amount)
}
