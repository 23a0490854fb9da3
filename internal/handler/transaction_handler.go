package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mbruton/pennywise/internal/domain"
	"github.com/mbruton/pennywise/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create/update request body
type TransactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func (r TransactionRequest) toInput() (service.TransactionInput, []ValidationError) {
	var fieldErrors []ValidationError

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		fieldErrors = append(fieldErrors, ValidationError{Field: "amount", Message: "Must be a valid decimal number"})
	}

	var date time.Time
	if r.Date != "" {
		date, err = time.Parse(time.DateOnly, r.Date)
		if err != nil {
			fieldErrors = append(fieldErrors, ValidationError{Field: "date", Message: "Must be a date in YYYY-MM-DD format"})
		}
	}

	if fieldErrors != nil {
		return service.TransactionInput{}, fieldErrors
	}
	return service.TransactionInput{
		Type:        domain.TransactionType(r.Type),
		Amount:      amount,
		Description: r.Description,
		Category:    r.Category,
		Date:        date,
	}, nil
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrors := req.toInput()
	if fieldErrors != nil {
		return NewValidationError(c, "Invalid transaction", fieldErrors)
	}

	transaction, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		return transactionErrorResponse(c, err, "Failed to create transaction")
	}

	log.Info().Int64("transaction_id", transaction.ID).Str("type", string(transaction.Type)).Str("category", transaction.Category).Msg("Transaction created")

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	filters, fieldErrors := parseTransactionFilters(c)
	if fieldErrors != nil {
		return NewValidationError(c, "Invalid filters", fieldErrors)
	}

	transactions, err := h.transactionService.ListTransactions(filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidType) {
			return NewValidationError(c, "Invalid type filter", nil)
		}
		log.Error().Err(err).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	responses := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = toTransactionResponse(t)
	}
	return c.JSON(http.StatusOK, responses)
}

// GetTransaction handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransaction(id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}
	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrors := req.toInput()
	if fieldErrors != nil {
		return NewValidationError(c, "Invalid transaction", fieldErrors)
	}

	transaction, err := h.transactionService.UpdateTransaction(id, input)
	if err != nil {
		return transactionErrorResponse(c, err, "Failed to update transaction")
	}

	log.Info().Int64("transaction_id", id).Msg("Transaction updated")

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Int64("transaction_id", id).Msg("Transaction deleted")

	return c.NoContent(http.StatusNoContent)
}

func parseTransactionFilters(c echo.Context) (*domain.TransactionFilters, []ValidationError) {
	filters := &domain.TransactionFilters{}
	var fieldErrors []ValidationError

	if v := c.QueryParam("type"); v != "" {
		t := domain.TransactionType(v)
		filters.Type = &t
	}
	if v := c.QueryParam("category"); v != "" {
		filters.Category = &v
	}
	if v := c.QueryParam("startDate"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			fieldErrors = append(fieldErrors, ValidationError{Field: "startDate", Message: "Must be a date in YYYY-MM-DD format"})
		} else {
			filters.StartDate = &d
		}
	}
	if v := c.QueryParam("endDate"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			fieldErrors = append(fieldErrors, ValidationError{Field: "endDate", Message: "Must be a date in YYYY-MM-DD format"})
		} else {
			// End date filter is inclusive at the API surface.
			d = d.AddDate(0, 0, 1)
			filters.EndDate = &d
		}
	}

	if fieldErrors != nil {
		return nil, fieldErrors
	}
	return filters, nil
}

func transactionErrorResponse(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidType):
		return NewValidationError(c, "Invalid transaction type", []ValidationError{
			{Field: "type", Message: "Must be income or expense"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrDescriptionRequired):
		return NewValidationError(c, "Description is required", []ValidationError{
			{Field: "description", Message: "Must not be empty"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Description too long", []ValidationError{
			{Field: "description", Message: "Must be at most 255 characters"},
		})
	case errors.Is(err, domain.ErrInvalidPeriod):
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be a date in YYYY-MM-DD format"},
		})
	case errors.Is(err, domain.ErrTypeMismatch):
		return NewValidationError(c, "Category belongs to the other transaction type", []ValidationError{
			{Field: "category", Message: "Category type must match transaction type"},
		})
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewNotFoundError(c, "Category not found")
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, "Transaction not found")
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date.Format(time.DateOnly),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}
