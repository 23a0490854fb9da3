package service

import (
	"errors"
	"time"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/shopspring/decimal"
)

// recommendationMonths is how much history the budget recommendation
// averages over; the ten percent buffer pads the average.
const recommendationMonths = 6

var recommendationBuffer = decimal.RequireFromString("1.1")

// BudgetService handles budget-related business logic
type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository, transactionRepo domain.TransactionRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// SetBudget creates or replaces the budget for a (category, period) pair
func (s *BudgetService) SetBudget(category string, amount decimal.Decimal, period domain.BudgetPeriod) (*domain.Budget, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if !period.Valid() {
		return nil, domain.ErrInvalidBudgetPeriod
	}

	// Budgets cap spending, so the category must exist on the expense side.
	if _, err := s.categoryRepo.GetByTypeAndName(domain.TransactionTypeExpense, category); err != nil {
		return nil, err
	}

	return s.budgetRepo.Upsert(&domain.Budget{
		Category: category,
		Amount:   amount,
		Period:   period,
	})
}

// GetBudgets retrieves budgets matching the filters
func (s *BudgetService) GetBudgets(filters *domain.BudgetFilters) ([]*domain.Budget, error) {
	if filters != nil && filters.Period != nil && !filters.Period.Valid() {
		return nil, domain.ErrInvalidBudgetPeriod
	}
	return s.budgetRepo.GetAll(filters)
}

// DeleteBudget removes the budget for a (category, period) pair
func (s *BudgetService) DeleteBudget(category string, period domain.BudgetPeriod) error {
	if !period.Valid() {
		return domain.ErrInvalidBudgetPeriod
	}
	return s.budgetRepo.Delete(category, period)
}

// RecommendBudget suggests a monthly budget for a category: the average
// monthly spend over the last six months plus a ten percent buffer.
// Returns ErrNotFound when the category has no spending history.
func (s *BudgetService) RecommendBudget(category string, asOf time.Time) (decimal.Decimal, error) {
	if _, err := s.categoryRepo.GetByTypeAndName(domain.TransactionTypeExpense, category); err != nil {
		return decimal.Zero, err
	}

	start := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -recommendationMonths, 0)
	end := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	expenseType := domain.TransactionTypeExpense

	transactions, err := s.transactionRepo.GetAll(&domain.TransactionFilters{
		Type:      &expenseType,
		Category:  &category,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	if total.IsZero() {
		return decimal.Zero, domain.ErrNotFound
	}

	average := total.Div(decimal.NewFromInt(recommendationMonths))
	return average.Mul(recommendationBuffer).Round(2), nil
}

// IsNotFound reports whether err is one of the not-found domain errors.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrTransactionNotFound) ||
		errors.Is(err, domain.ErrCategoryNotFound) ||
		errors.Is(err, domain.ErrBudgetNotFound)
}
