package service

import (
	"errors"
	"strings"
	"time"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// TransactionInput holds the input for creating or updating a transaction
type TransactionInput struct {
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        time.Time
}

// CreateTransaction creates a new transaction with validation
func (s *TransactionService) CreateTransaction(input TransactionInput) (*domain.Transaction, error) {
	transaction, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	return s.transactionRepo.Create(transaction)
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(id int64) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(id)
}

// ListTransactions retrieves transactions matching the filters
func (s *TransactionService) ListTransactions(filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if filters != nil && filters.Type != nil && !filters.Type.Valid() {
		return nil, domain.ErrInvalidType
	}
	return s.transactionRepo.GetAll(filters)
}

// UpdateTransaction replaces the mutable fields of an existing transaction.
// The store refreshes updated_at.
func (s *TransactionService) UpdateTransaction(id int64, input TransactionInput) (*domain.Transaction, error) {
	if _, err := s.transactionRepo.GetByID(id); err != nil {
		return nil, err
	}

	transaction, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	transaction.ID = id
	return s.transactionRepo.Update(transaction)
}

// DeleteTransaction removes a transaction
func (s *TransactionService) DeleteTransaction(id int64) error {
	return s.transactionRepo.Delete(id)
}

func (s *TransactionService) validate(input TransactionInput) (*domain.Transaction, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidType
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrDescriptionRequired
	}
	if len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrNameTooLong
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domain.ErrCategoryNotFound
	}

	if input.Date.IsZero() {
		return nil, domain.ErrInvalidPeriod
	}

	// The category must exist under the transaction's own type. A category
	// of the same name under the opposite type is a kind mismatch, not a
	// missing category.
	if _, err := s.categoryRepo.GetByTypeAndName(input.Type, category); err != nil {
		if !errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, err
		}
		other := domain.TransactionTypeExpense
		if input.Type == domain.TransactionTypeExpense {
			other = domain.TransactionTypeIncome
		}
		if _, otherErr := s.categoryRepo.GetByTypeAndName(other, category); otherErr == nil {
			return nil, domain.ErrTypeMismatch
		}
		return nil, domain.ErrCategoryNotFound
	}

	return &domain.Transaction{
		Type:        input.Type,
		Amount:      input.Amount,
		Description: description,
		Category:    category,
		Date:        input.Date,
	}, nil
}
