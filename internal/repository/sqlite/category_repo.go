package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mbruton/pennywise/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using SQLite
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	res, err := r.db.Exec(`
		INSERT INTO categories (type, name, description, created_at)
		VALUES (?, ?, ?, ?)`,
		string(category.Type),
		category.Name,
		category.Description,
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read category id: %w", err)
	}
	return r.GetByID(id)
}

func (r *CategoryRepository) GetByID(id int64) (*domain.Category, error) {
	row := r.db.QueryRow(`
		SELECT id, type, name, description, created_at
		FROM categories
		WHERE id = ?`, id)

	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	return category, err
}

func (r *CategoryRepository) GetByTypeAndName(categoryType domain.TransactionType, name string) (*domain.Category, error) {
	row := r.db.QueryRow(`
		SELECT id, type, name, description, created_at
		FROM categories
		WHERE type = ? AND name = ?`, string(categoryType), name)

	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	return category, err
}

func (r *CategoryRepository) GetAll() ([]*domain.Category, error) {
	rows, err := r.db.Query(`
		SELECT id, type, name, description, created_at
		FROM categories
		ORDER BY type, name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) HasTransactions(name string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE category = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count transactions for category: %w", err)
	}
	return count > 0, nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var (
		c            domain.Category
		categoryType string
		createdAt    string
	)
	if err := row.Scan(&c.ID, &categoryType, &c.Name, &c.Description, &createdAt); err != nil {
		return nil, err
	}

	c.Type = domain.TransactionType(categoryType)
	var err error
	if c.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
