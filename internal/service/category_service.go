package service

import (
	"strings"

	"github.com/mbruton/pennywise/internal/domain"
)

// CategoryService handles category-related business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new category with validation
func (s *CategoryService) CreateCategory(categoryType domain.TransactionType, name, description string) (*domain.Category, error) {
	if !categoryType.Valid() {
		return nil, domain.ErrInvalidType
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}

	return s.categoryRepo.Create(&domain.Category{
		Type:        categoryType,
		Name:        name,
		Description: strings.TrimSpace(description),
	})
}

// GetCategories retrieves all categories
func (s *CategoryService) GetCategories() ([]*domain.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(id int64) (*domain.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// DeleteCategory removes a category unless transactions still reference it
func (s *CategoryService) DeleteCategory(id int64) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}

	inUse, err := s.categoryRepo.HasTransactions(category.Name)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrCategoryInUse
	}

	return s.categoryRepo.Delete(id)
}
