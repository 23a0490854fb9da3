package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mbruton/pennywise/internal/domain"
	"github.com/mbruton/pennywise/internal/report"
	"github.com/mbruton/pennywise/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// BudgetStatusResponse represents one budget status line
type BudgetStatusResponse struct {
	Category    string `json:"category"`
	Period      string `json:"period"`
	Budgeted    string `json:"budgeted"`
	Actual      string `json:"actual"`
	Remaining   string `json:"remaining"`
	PercentUsed string `json:"percentUsed,omitempty"`
	Alert       string `json:"alert"`
}

// TrendPointResponse represents one month in a trend series
type TrendPointResponse struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// CategoryTrendResponse represents one category's month-by-month spend
type CategoryTrendResponse struct {
	Category string                       `json:"category"`
	Points   []CategoryTrendPointResponse `json:"points"`
}

type CategoryTrendPointResponse struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Amount string `json:"amount"`
}

// ComparisonResponse represents deltas against an earlier period
type ComparisonResponse struct {
	Label            string `json:"label"`
	IncomeChange     string `json:"incomeChange"`
	ExpenseChange    string `json:"expenseChange"`
	IncomePctChange  string `json:"incomePctChange,omitempty"`
	ExpensePctChange string `json:"expensePctChange,omitempty"`
}

// MonthlyReportResponse represents the monthly report document
type MonthlyReportResponse struct {
	Year              int                     `json:"year"`
	Month             int                     `json:"month"`
	Label             string                  `json:"label"`
	TotalIncome       string                  `json:"totalIncome"`
	TotalExpense      string                  `json:"totalExpense"`
	Net               string                  `json:"net"`
	IncomeByCategory  map[string]string       `json:"incomeByCategory"`
	ExpenseByCategory map[string]string       `json:"expenseByCategory"`
	BudgetStatuses    []BudgetStatusResponse  `json:"budgetStatuses"`
	Trend             []TrendPointResponse    `json:"trend"`
	TopExpenseTrends  []CategoryTrendResponse `json:"topExpenseTrends"`
	PreviousMonth     *ComparisonResponse     `json:"previousMonth,omitempty"`
	Notes             []report.Note           `json:"notes,omitempty"`
}

// YearlyReportResponse represents the yearly report document
type YearlyReportResponse struct {
	Year              int                    `json:"year"`
	TotalIncome       string                 `json:"totalIncome"`
	TotalExpense      string                 `json:"totalExpense"`
	Net               string                 `json:"net"`
	IncomeByCategory  map[string]string      `json:"incomeByCategory"`
	ExpenseByCategory map[string]string      `json:"expenseByCategory"`
	BudgetStatuses    []BudgetStatusResponse `json:"budgetStatuses"`
	Months            []TrendPointResponse   `json:"months"`
	PreviousYear      *ComparisonResponse    `json:"previousYear,omitempty"`
	Notes             []report.Note          `json:"notes,omitempty"`
}

// PeriodTotalsResponse represents the headline numbers for one period
type PeriodTotalsResponse struct {
	Label        string `json:"label"`
	TotalIncome  string `json:"totalIncome"`
	TotalExpense string `json:"totalExpense"`
	Net          string `json:"net"`
}

// TypeStatisticsResponse represents count/total/average for one type
type TypeStatisticsResponse struct {
	Count   int    `json:"count"`
	Total   string `json:"total"`
	Average string `json:"average"`
}

// StatisticsResponse represents the whole-ledger statistics
type StatisticsResponse struct {
	TotalTransactions int                    `json:"totalTransactions"`
	Income            TypeStatisticsResponse `json:"income"`
	Expense           TypeStatisticsResponse `json:"expense"`
	NetWorth          string                 `json:"netWorth"`
}

// QuickSummaryResponse represents the at-a-glance document
type QuickSummaryResponse struct {
	AsOf         string                 `json:"asOf"`
	CurrentMonth PeriodTotalsResponse   `json:"currentMonth"`
	CurrentYear  PeriodTotalsResponse   `json:"currentYear"`
	Alerts       []BudgetStatusResponse `json:"alerts"`
	Statistics   StatisticsResponse     `json:"statistics"`
	Notes        []report.Note          `json:"notes,omitempty"`
}

// GetMonthlyReport handles GET /api/v1/reports/monthly/:year/:month
func (h *ReportHandler) GetMonthlyReport(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", nil)
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", nil)
	}

	doc, err := h.reportService.MonthlyReport(year, month)
	if err != nil {
		return reportErrorResponse(c, err, "Failed to build monthly report")
	}
	return c.JSON(http.StatusOK, toMonthlyReportResponse(doc))
}

// GetYearlyReport handles GET /api/v1/reports/yearly/:year
func (h *ReportHandler) GetYearlyReport(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", nil)
	}

	doc, err := h.reportService.YearlyReport(year)
	if err != nil {
		return reportErrorResponse(c, err, "Failed to build yearly report")
	}
	return c.JSON(http.StatusOK, toYearlyReportResponse(doc))
}

// GetQuickSummary handles GET /api/v1/reports/summary
func (h *ReportHandler) GetQuickSummary(c echo.Context) error {
	doc, err := h.reportService.QuickSummary()
	if err != nil {
		return reportErrorResponse(c, err, "Failed to build summary")
	}
	return c.JSON(http.StatusOK, toQuickSummaryResponse(doc))
}

// GetTrend handles GET /api/v1/reports/trend?months=n
func (h *ReportHandler) GetTrend(c echo.Context) error {
	months := 6
	if v := c.QueryParam("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 120 {
			return NewValidationError(c, "Invalid months parameter", []ValidationError{
				{Field: "months", Message: "Must be an integer between 1 and 120"},
			})
		}
		months = n
	}

	points, err := h.reportService.Trend(months)
	if err != nil {
		return reportErrorResponse(c, err, "Failed to build trend")
	}
	return c.JSON(http.StatusOK, toTrendPointResponses(points))
}

func reportErrorResponse(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod):
		return NewValidationError(c, "Invalid reporting period", nil)
	case errors.Is(err, domain.ErrMalformedRecord):
		log.Error().Err(err).Msg("Report aborted by malformed ledger record")
		return NewConflictError(c, "Ledger contains a malformed record: "+err.Error())
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}

func toMonthlyReportResponse(doc *report.MonthlyReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		Year:              doc.Year,
		Month:             doc.Month,
		Label:             doc.Label,
		TotalIncome:       doc.TotalIncome.StringFixed(2),
		TotalExpense:      doc.TotalExpense.StringFixed(2),
		Net:               doc.Net.StringFixed(2),
		IncomeByCategory:  toAmountMap(doc.IncomeByCategory),
		ExpenseByCategory: toAmountMap(doc.ExpenseByCategory),
		BudgetStatuses:    toBudgetStatusResponses(doc.BudgetStatuses),
		Trend:             toTrendPointResponses(doc.Trend),
		TopExpenseTrends:  toCategoryTrendResponses(doc.TopExpenseTrends),
		PreviousMonth:     toComparisonResponse(doc.PreviousMonth),
		Notes:             doc.Notes,
	}
}

func toYearlyReportResponse(doc *report.YearlyReport) YearlyReportResponse {
	return YearlyReportResponse{
		Year:              doc.Year,
		TotalIncome:       doc.TotalIncome.StringFixed(2),
		TotalExpense:      doc.TotalExpense.StringFixed(2),
		Net:               doc.Net.StringFixed(2),
		IncomeByCategory:  toAmountMap(doc.IncomeByCategory),
		ExpenseByCategory: toAmountMap(doc.ExpenseByCategory),
		BudgetStatuses:    toBudgetStatusResponses(doc.BudgetStatuses),
		Months:            toTrendPointResponses(doc.Months),
		PreviousYear:      toComparisonResponse(doc.PreviousYear),
		Notes:             doc.Notes,
	}
}

func toQuickSummaryResponse(doc *report.QuickSummary) QuickSummaryResponse {
	return QuickSummaryResponse{
		AsOf:         doc.AsOf.Format(time.RFC3339),
		CurrentMonth: toPeriodTotalsResponse(doc.CurrentMonth),
		CurrentYear:  toPeriodTotalsResponse(doc.CurrentYear),
		Alerts:       toBudgetStatusResponses(doc.Alerts),
		Statistics: StatisticsResponse{
			TotalTransactions: doc.Statistics.TotalTransactions,
			Income:            toTypeStatisticsResponse(doc.Statistics.Income),
			Expense:           toTypeStatisticsResponse(doc.Statistics.Expense),
			NetWorth:          doc.Statistics.NetWorth.StringFixed(2),
		},
		Notes: doc.Notes,
	}
}

func toAmountMap(amounts map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(amounts))
	for name, amount := range amounts {
		out[name] = amount.StringFixed(2)
	}
	return out
}

func toBudgetStatusResponses(statuses []report.BudgetStatus) []BudgetStatusResponse {
	out := make([]BudgetStatusResponse, len(statuses))
	for i, s := range statuses {
		resp := BudgetStatusResponse{
			Category:  s.Category,
			Period:    string(s.Period),
			Budgeted:  s.Budgeted.StringFixed(2),
			Actual:    s.Actual.StringFixed(2),
			Remaining: s.Remaining.StringFixed(2),
			Alert:     string(s.Alert),
		}
		if s.PercentUsed != nil {
			resp.PercentUsed = s.PercentUsed.StringFixed(2)
		}
		out[i] = resp
	}
	return out
}

func toTrendPointResponses(points []report.TrendPoint) []TrendPointResponse {
	out := make([]TrendPointResponse, len(points))
	for i, p := range points {
		out[i] = TrendPointResponse{
			Year:    p.Year,
			Month:   p.Month,
			Income:  p.Income.StringFixed(2),
			Expense: p.Expense.StringFixed(2),
			Net:     p.Net.StringFixed(2),
		}
	}
	return out
}

func toCategoryTrendResponses(trends []report.CategoryTrend) []CategoryTrendResponse {
	out := make([]CategoryTrendResponse, len(trends))
	for i, tr := range trends {
		points := make([]CategoryTrendPointResponse, len(tr.Points))
		for j, p := range tr.Points {
			points[j] = CategoryTrendPointResponse{
				Year:   p.Year,
				Month:  p.Month,
				Amount: p.Amount.StringFixed(2),
			}
		}
		out[i] = CategoryTrendResponse{Category: tr.Category, Points: points}
	}
	return out
}

func toComparisonResponse(cmp *report.Comparison) *ComparisonResponse {
	if cmp == nil {
		return nil
	}
	resp := &ComparisonResponse{
		Label:         cmp.Label,
		IncomeChange:  cmp.IncomeChange.StringFixed(2),
		ExpenseChange: cmp.ExpenseChange.StringFixed(2),
	}
	if cmp.IncomePctChange != nil {
		resp.IncomePctChange = cmp.IncomePctChange.StringFixed(2)
	}
	if cmp.ExpensePctChange != nil {
		resp.ExpensePctChange = cmp.ExpensePctChange.StringFixed(2)
	}
	return resp
}

func toPeriodTotalsResponse(t report.PeriodTotals) PeriodTotalsResponse {
	return PeriodTotalsResponse{
		Label:        t.Label,
		TotalIncome:  t.TotalIncome.StringFixed(2),
		TotalExpense: t.TotalExpense.StringFixed(2),
		Net:          t.Net.StringFixed(2),
	}
}

func toTypeStatisticsResponse(s report.TypeStatistics) TypeStatisticsResponse {
	return TypeStatisticsResponse{
		Count:   s.Count,
		Total:   s.Total.StringFixed(2),
		Average: s.Average.StringFixed(2),
	}
}
