package domain

import "time"

type Category struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id int64) (*Category, error)
	GetByTypeAndName(categoryType TransactionType, name string) (*Category, error)
	GetAll() ([]*Category, error)
	Delete(id int64) error
	HasTransactions(name string) (bool, error)
}
