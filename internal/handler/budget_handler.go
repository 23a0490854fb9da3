package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mbruton/pennywise/internal/domain"
	"github.com/mbruton/pennywise/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest represents the create/replace request body
type SetBudgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Period   string `json:"period"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Period   string `json:"period"`
}

// RecommendationResponse represents a budget recommendation
type RecommendationResponse struct {
	Category    string `json:"category"`
	Recommended string `json:"recommended"`
}

// SetBudget handles PUT /api/v1/budgets
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount format", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.SetBudget(req.Category, amount, domain.BudgetPeriod(req.Period))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		case errors.Is(err, domain.ErrInvalidBudgetPeriod):
			return NewValidationError(c, "Invalid period", []ValidationError{
				{Field: "period", Message: "Must be monthly or yearly"},
			})
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "Expense category not found")
		default:
			log.Error().Err(err).Str("category", req.Category).Msg("Failed to set budget")
			return NewInternalError(c, "Failed to set budget")
		}
	}

	log.Info().Str("category", budget.Category).Str("period", string(budget.Period)).Str("amount", budget.Amount.String()).Msg("Budget set")

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// GetBudgets handles GET /api/v1/budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	filters := &domain.BudgetFilters{}
	if v := c.QueryParam("category"); v != "" {
		filters.Category = &v
	}
	if v := c.QueryParam("period"); v != "" {
		p := domain.BudgetPeriod(v)
		filters.Period = &p
	}

	budgets, err := h.budgetService.GetBudgets(filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBudgetPeriod) {
			return NewValidationError(c, "Invalid period filter", nil)
		}
		log.Error().Err(err).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	responses := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		responses[i] = toBudgetResponse(b)
	}
	return c.JSON(http.StatusOK, responses)
}

// DeleteBudget handles DELETE /api/v1/budgets/:category/:period
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	category := c.Param("category")
	period := domain.BudgetPeriod(c.Param("period"))

	if err := h.budgetService.DeleteBudget(category, period); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidBudgetPeriod):
			return NewValidationError(c, "Invalid period", nil)
		case errors.Is(err, domain.ErrBudgetNotFound):
			return NewNotFoundError(c, "Budget not found")
		default:
			log.Error().Err(err).Str("category", category).Msg("Failed to delete budget")
			return NewInternalError(c, "Failed to delete budget")
		}
	}

	log.Info().Str("category", category).Str("period", string(period)).Msg("Budget deleted")

	return c.NoContent(http.StatusNoContent)
}

// RecommendBudget handles GET /api/v1/budgets/recommendation/:category
func (h *BudgetHandler) RecommendBudget(c echo.Context) error {
	category := c.Param("category")

	recommended, err := h.budgetService.RecommendBudget(category, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "Expense category not found")
		case errors.Is(err, domain.ErrNotFound):
			return NewNotFoundError(c, "No spending history for category")
		default:
			log.Error().Err(err).Str("category", category).Msg("Failed to recommend budget")
			return NewInternalError(c, "Failed to recommend budget")
		}
	}

	return c.JSON(http.StatusOK, RecommendationResponse{
		Category:    category,
		Recommended: recommended.StringFixed(2),
	})
}

func toBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:       b.ID,
		Category: b.Category,
		Amount:   b.Amount.StringFixed(2),
		Period:   string(b.Period),
	}
}
