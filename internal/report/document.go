package report

import (
	"time"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/shopspring/decimal"
)

// UncategorizedBucket collects amounts whose category is missing from the
// snapshot. A stale reference must not prevent the rest of the report.
const UncategorizedBucket = "Uncategorized"

type NoteKind string

const (
	NoteUnknownCategory NoteKind = "unknown_category"
	NoteAmbiguousBudget NoteKind = "ambiguous_budget"
)

// Note is a non-fatal warning attached to a report document.
type Note struct {
	Kind     NoteKind `json:"kind"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
}

type AlertLevel string

const (
	AlertNone       AlertLevel = "none"
	AlertWarning    AlertLevel = "warning"
	AlertOverBudget AlertLevel = "over_budget"
)

// BudgetStatus compares actual spending in a category against its
// configured limit for one period.
type BudgetStatus struct {
	Category    string              `json:"category"`
	Period      domain.BudgetPeriod `json:"period"`
	Budgeted    decimal.Decimal     `json:"budgeted"`
	Actual      decimal.Decimal     `json:"actual"`
	Remaining   decimal.Decimal     `json:"remaining"`
	PercentUsed *decimal.Decimal    `json:"percentUsed,omitempty"`
	Alert       AlertLevel          `json:"alert"`
}

// TrendPoint is one month's totals inside a trend series.
type TrendPoint struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CategoryTrend is the month-by-month spend of a single category.
type CategoryTrend struct {
	Category string               `json:"category"`
	Points   []CategoryTrendPoint `json:"points"`
}

type CategoryTrendPoint struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// Comparison holds income/expense deltas against an earlier period.
// Percentage changes are omitted when the earlier value is zero.
type Comparison struct {
	Label            string           `json:"label"`
	IncomeChange     decimal.Decimal  `json:"incomeChange"`
	ExpenseChange    decimal.Decimal  `json:"expenseChange"`
	IncomePctChange  *decimal.Decimal `json:"incomePctChange,omitempty"`
	ExpensePctChange *decimal.Decimal `json:"expensePctChange,omitempty"`
}

// MonthlyReport is the report document for one calendar month.
type MonthlyReport struct {
	Year              int                        `json:"year"`
	Month             int                        `json:"month"`
	Label             string                     `json:"label"`
	TotalIncome       decimal.Decimal            `json:"totalIncome"`
	TotalExpense      decimal.Decimal            `json:"totalExpense"`
	Net               decimal.Decimal            `json:"net"`
	IncomeByCategory  map[string]decimal.Decimal `json:"incomeByCategory"`
	ExpenseByCategory map[string]decimal.Decimal `json:"expenseByCategory"`
	BudgetStatuses    []BudgetStatus             `json:"budgetStatuses"`
	Trend             []TrendPoint               `json:"trend"`
	TopExpenseTrends  []CategoryTrend            `json:"topExpenseTrends"`
	PreviousMonth     *Comparison                `json:"previousMonth,omitempty"`
	Notes             []Note                     `json:"notes,omitempty"`
}

// YearlyReport is the report document for one calendar year.
type YearlyReport struct {
	Year              int                        `json:"year"`
	TotalIncome       decimal.Decimal            `json:"totalIncome"`
	TotalExpense      decimal.Decimal            `json:"totalExpense"`
	Net               decimal.Decimal            `json:"net"`
	IncomeByCategory  map[string]decimal.Decimal `json:"incomeByCategory"`
	ExpenseByCategory map[string]decimal.Decimal `json:"expenseByCategory"`
	BudgetStatuses    []BudgetStatus             `json:"budgetStatuses"`
	Months            []TrendPoint               `json:"months"`
	PreviousYear      *Comparison                `json:"previousYear,omitempty"`
	Notes             []Note                     `json:"notes,omitempty"`
}

// TypeStatistics holds count/total/average for one transaction type.
type TypeStatistics struct {
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// Statistics summarizes the whole ledger regardless of period.
type Statistics struct {
	TotalTransactions int             `json:"totalTransactions"`
	Income            TypeStatistics  `json:"income"`
	Expense           TypeStatistics  `json:"expense"`
	NetWorth          decimal.Decimal `json:"netWorth"`
}

// PeriodTotals holds the headline numbers for one period of a quick summary.
type PeriodTotals struct {
	Label        string          `json:"label"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`
}

// QuickSummary is the at-a-glance report document: current month, current
// year, and every category currently in warning or over_budget state.
type QuickSummary struct {
	AsOf         time.Time      `json:"asOf"`
	CurrentMonth PeriodTotals   `json:"currentMonth"`
	CurrentYear  PeriodTotals   `json:"currentYear"`
	Alerts       []BudgetStatus `json:"alerts"`
	Statistics   Statistics     `json:"statistics"`
	Notes        []Note         `json:"notes,omitempty"`
}
