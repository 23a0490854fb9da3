package domain

import "errors"

// Domain errors
var (
	ErrNotFound              = errors.New("resource not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrBudgetNotFound        = errors.New("budget not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrCategoryInUse         = errors.New("category is referenced by transactions")
	ErrNameRequired          = errors.New("name is required")
	ErrNameTooLong           = errors.New("name exceeds maximum length")
	ErrDescriptionRequired   = errors.New("description is required")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInvalidType           = errors.New("invalid transaction type")
	ErrInvalidBudgetPeriod   = errors.New("invalid budget period")
	ErrTypeMismatch          = errors.New("transaction type does not match category type")
)

// Report engine errors
var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrUnknownCategory = errors.New("unknown category")
	ErrAmbiguousBudget = errors.New("ambiguous budget")
	ErrInvalidPeriod   = errors.New("invalid period")
)

// Validation constants
const (
	MaxCategoryNameLength = 100
	MaxDescriptionLength  = 255
)
