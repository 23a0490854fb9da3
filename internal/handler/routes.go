package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, transactionHandler *TransactionHandler, categoryHandler *CategoryHandler, budgetHandler *BudgetHandler, reportHandler *ReportHandler, csvHandler *CSVHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/export", csvHandler.ExportTransactions)
	transactions.POST("/import", csvHandler.ImportTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.PUT("", budgetHandler.SetBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/recommendation/:category", budgetHandler.RecommendBudget)
	budgets.DELETE("/:category/:period", budgetHandler.DeleteBudget)

	// Report routes
	reports := api.Group("/reports")
	reports.GET("/monthly/:year/:month", reportHandler.GetMonthlyReport)
	reports.GET("/yearly/:year", reportHandler.GetYearlyReport)
	reports.GET("/summary", reportHandler.GetQuickSummary)
	reports.GET("/trend", reportHandler.GetTrend)
}
