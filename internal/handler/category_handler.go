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
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the create request body
type CategoryRequest struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(domain.TransactionType(req.Type), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidType):
			return NewValidationError(c, "Invalid category type", []ValidationError{
				{Field: "type", Message: "Must be income or expense"},
			})
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Name is required", []ValidationError{
				{Field: "name", Message: "Must not be empty"},
			})
		case errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, "Name too long", []ValidationError{
				{Field: "name", Message: "Must be at most 100 characters"},
			})
		case errors.Is(err, domain.ErrCategoryAlreadyExists):
			return NewConflictError(c, "Category already exists")
		default:
			log.Error().Err(err).Str("name", req.Name).Msg("Failed to create category")
			return NewInternalError(c, "Failed to create category")
		}
	}

	log.Info().Int64("category_id", category.ID).Str("name", category.Name).Str("type", string(category.Type)).Msg("Category created")

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories")
	}

	responses := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		responses[i] = toCategoryResponse(cat)
	}
	return c.JSON(http.StatusOK, responses)
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "Category not found")
		case errors.Is(err, domain.ErrCategoryInUse):
			return NewConflictError(c, "Category still has transactions")
		default:
			log.Error().Err(err).Int64("category_id", id).Msg("Failed to delete category")
			return NewInternalError(c, "Failed to delete category")
		}
	}

	log.Info().Int64("category_id", id).Msg("Category deleted")

	return c.NoContent(http.StatusNoContent)
}

func toCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Type:        string(cat.Type),
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt.Format(time.RFC3339),
	}
}
