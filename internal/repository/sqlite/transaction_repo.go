package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using SQLite
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	now := time.Now().UTC()

	res, err := r.db.Exec(`
		INSERT INTO transactions (type, amount, description, category, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(transaction.Type),
		transaction.Amount.String(),
		transaction.Description,
		transaction.Category,
		transaction.Date.Format(time.DateOnly),
		now.Format(timeLayout),
		now.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read transaction id: %w", err)
	}
	return r.GetByID(id)
}

func (r *TransactionRepository) GetByID(id int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(`
		SELECT id, type, amount, description, category, date, created_at, updated_at
		FROM transactions
		WHERE id = ?`, id)

	transaction, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, err
}

func (r *TransactionRepository) GetAll(filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	query := `
		SELECT id, type, amount, description, category, date, created_at, updated_at
		FROM transactions
		WHERE 1 = 1`
	var args []any

	if filters != nil {
		if filters.Type != nil {
			query += " AND type = ?"
			args = append(args, string(*filters.Type))
		}
		if filters.Category != nil {
			query += " AND category = ?"
			args = append(args, *filters.Category)
		}
		if filters.StartDate != nil {
			query += " AND date >= ?"
			args = append(args, filters.StartDate.Format(time.DateOnly))
		}
		if filters.EndDate != nil {
			query += " AND date < ?"
			args = append(args, filters.EndDate.Format(time.DateOnly))
		}
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	res, err := r.db.Exec(`
		UPDATE transactions
		SET type = ?, amount = ?, description = ?, category = ?, date = ?, updated_at = ?
		WHERE id = ?`,
		string(transaction.Type),
		transaction.Amount.String(),
		transaction.Description,
		transaction.Category,
		transaction.Date.Format(time.DateOnly),
		time.Now().UTC().Format(timeLayout),
		transaction.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return r.GetByID(transaction.ID)
}

func (r *TransactionRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		t                    domain.Transaction
		transactionType      string
		amount               string
		date                 string
		createdAt, updatedAt string
	)
	if err := row.Scan(&t.ID, &transactionType, &amount, &t.Description, &t.Category, &date, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	t.Type = domain.TransactionType(transactionType)
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if t.Date, err = time.Parse(time.DateOnly, date); err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	if t.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if t.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	return &t, nil
}
