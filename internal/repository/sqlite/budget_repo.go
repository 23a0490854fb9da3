package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetRepository implements domain.BudgetRepository using SQLite
type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Upsert creates the budget or, when one already exists for the same
// (category, period), replaces its amount and refreshes updated_at.
func (r *BudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	now := time.Now().UTC().Format(timeLayout)

	_, err := r.db.Exec(`
		INSERT INTO budgets (category, amount, period, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (category, period)
		DO UPDATE SET amount = excluded.amount, updated_at = excluded.updated_at`,
		budget.Category,
		budget.Amount.String(),
		string(budget.Period),
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert budget: %w", err)
	}
	return r.Get(budget.Category, budget.Period)
}

func (r *BudgetRepository) Get(category string, period domain.BudgetPeriod) (*domain.Budget, error) {
	row := r.db.QueryRow(`
		SELECT id, category, amount, period, created_at, updated_at
		FROM budgets
		WHERE category = ? AND period = ?`, category, string(period))

	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, err
}

func (r *BudgetRepository) GetAll(filters *domain.BudgetFilters) ([]*domain.Budget, error) {
	query := `
		SELECT id, category, amount, period, created_at, updated_at
		FROM budgets
		WHERE 1 = 1`
	var args []any

	if filters != nil {
		if filters.Category != nil {
			query += " AND category = ?"
			args = append(args, *filters.Category)
		}
		if filters.Period != nil {
			query += " AND period = ?"
			args = append(args, string(*filters.Period))
		}
	}
	query += " ORDER BY category, period"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepository) Delete(category string, period domain.BudgetPeriod) error {
	res, err := r.db.Exec(`DELETE FROM budgets WHERE category = ? AND period = ?`, category, string(period))
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row rowScanner) (*domain.Budget, error) {
	var (
		b                    domain.Budget
		amount               string
		period               string
		createdAt, updatedAt string
	)
	if err := row.Scan(&b.ID, &b.Category, &amount, &period, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	b.Period = domain.BudgetPeriod(period)
	if b.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if b.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if b.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	return &b, nil
}
