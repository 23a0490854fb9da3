package testutil

import (
	"sort"
	"time"

	"github.com/mbruton/pennywise/internal/domain"
)

// MockTransactionRepository is an in-memory implementation of
// domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int64]*domain.Transaction
	NextID       int64
	CreateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
	GetAllFn     func(filters *domain.TransactionFilters) ([]*domain.Transaction, error)
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int64]*domain.Transaction),
		NextID:       1,
	}
}

// Create stores a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(transaction)
	}
	stored := *transaction
	stored.ID = m.NextID
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.NextID++
	m.Transactions[stored.ID] = &stored
	return &stored, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(id int64) (*domain.Transaction, error) {
	if t, ok := m.Transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// GetAll retrieves transactions matching the filters, newest first
func (m *MockTransactionRepository) GetAll(filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(filters)
	}
	var out []*domain.Transaction
	for _, t := range m.Transactions {
		if filters != nil {
			if filters.Type != nil && t.Type != *filters.Type {
				continue
			}
			if filters.Category != nil && t.Category != *filters.Category {
				continue
			}
			if filters.StartDate != nil && t.Date.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && !t.Date.Before(*filters.EndDate) {
				continue
			}
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Update replaces an existing transaction
func (m *MockTransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	existing, ok := m.Transactions[transaction.ID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	stored := *transaction
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	m.Transactions[stored.ID] = &stored
	return &stored, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(id int64) error {
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// AddTransaction adds a transaction directly (helper for tests)
func (m *MockTransactionRepository) AddTransaction(t *domain.Transaction) {
	if t.ID == 0 {
		t.ID = m.NextID
		m.NextID++
	} else if t.ID >= m.NextID {
		m.NextID = t.ID + 1
	}
	m.Transactions[t.ID] = t
}

// MockCategoryRepository is an in-memory implementation of
// domain.CategoryRepository
type MockCategoryRepository struct {
	Categories   map[int64]*domain.Category
	NextID       int64
	Transactions *MockTransactionRepository
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int64]*domain.Category),
		NextID:     1,
	}
}

// Create stores a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	for _, c := range m.Categories {
		if c.Type == category.Type && c.Name == category.Name {
			return nil, domain.ErrCategoryAlreadyExists
		}
	}
	stored := *category
	stored.ID = m.NextID
	stored.CreatedAt = time.Now().UTC()
	m.NextID++
	m.Categories[stored.ID] = &stored
	return &stored, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int64) (*domain.Category, error) {
	if c, ok := m.Categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetByTypeAndName retrieves a category by its (type, name) pair
func (m *MockCategoryRepository) GetByTypeAndName(categoryType domain.TransactionType, name string) (*domain.Category, error) {
	for _, c := range m.Categories {
		if c.Type == categoryType && c.Name == name {
			return c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories ordered by type then name
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range m.Categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id int64) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// HasTransactions reports whether any stored transaction references the
// category name
func (m *MockCategoryRepository) HasTransactions(name string) (bool, error) {
	if m.Transactions == nil {
		return false, nil
	}
	for _, t := range m.Transactions.Transactions {
		if t.Category == name {
			return true, nil
		}
	}
	return false, nil
}

// AddCategory adds a category directly (helper for tests)
func (m *MockCategoryRepository) AddCategory(c *domain.Category) {
	if c.ID == 0 {
		c.ID = m.NextID
		m.NextID++
	} else if c.ID >= m.NextID {
		m.NextID = c.ID + 1
	}
	m.Categories[c.ID] = c
}

// MockBudgetRepository is an in-memory implementation of
// domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[string]*domain.Budget
	NextID  int64
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[string]*domain.Budget),
		NextID:  1,
	}
}

func budgetMapKey(category string, period domain.BudgetPeriod) string {
	return category + "|" + string(period)
}

// Upsert creates or replaces the budget for a (category, period) pair
func (m *MockBudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	key := budgetMapKey(budget.Category, budget.Period)
	now := time.Now().UTC()
	if existing, ok := m.Budgets[key]; ok {
		existing.Amount = budget.Amount
		existing.UpdatedAt = now
		return existing, nil
	}
	stored := *budget
	stored.ID = m.NextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.NextID++
	m.Budgets[key] = &stored
	return &stored, nil
}

// Get retrieves the budget for a (category, period) pair
func (m *MockBudgetRepository) Get(category string, period domain.BudgetPeriod) (*domain.Budget, error) {
	if b, ok := m.Budgets[budgetMapKey(category, period)]; ok {
		return b, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// GetAll retrieves budgets matching the filters
func (m *MockBudgetRepository) GetAll(filters *domain.BudgetFilters) ([]*domain.Budget, error) {
	var out []*domain.Budget
	for _, b := range m.Budgets {
		if filters != nil {
			if filters.Category != nil && b.Category != *filters.Category {
				continue
			}
			if filters.Period != nil && b.Period != *filters.Period {
				continue
			}
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Period < out[j].Period
	})
	return out, nil
}

// Delete removes the budget for a (category, period) pair
func (m *MockBudgetRepository) Delete(category string, period domain.BudgetPeriod) error {
	key := budgetMapKey(category, period)
	if _, ok := m.Budgets[key]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, key)
	return nil
}

// AddBudget adds a budget directly (helper for tests)
func (m *MockBudgetRepository) AddBudget(b *domain.Budget) {
	if b.ID == 0 {
		b.ID = m.NextID
		m.NextID++
	} else if b.ID >= m.NextID {
		m.NextID = b.ID + 1
	}
	m.Budgets[budgetMapKey(b.Category, b.Period)] = b
}
