package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is one of the known budget periods.
func (p BudgetPeriod) Valid() bool {
	return p == BudgetPeriodMonthly || p == BudgetPeriodYearly
}

type Budget struct {
	ID        int64           `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    BudgetPeriod    `json:"period"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type BudgetFilters struct {
	Category *string
	Period   *BudgetPeriod
}

type BudgetRepository interface {
	Upsert(budget *Budget) (*Budget, error)
	Get(category string, period BudgetPeriod) (*Budget, error)
	GetAll(filters *BudgetFilters) ([]*Budget, error)
	Delete(category string, period BudgetPeriod) error
}
