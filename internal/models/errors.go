package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no resource for the specified ID")
)

// Transaction errors
var (
	ErrTransactionKindInvalid       = errors.New("the transaction kind must be income or expense")
	ErrTransactionAmountNotPositive = errors.New("the transaction amount must be positive")
)

// Budget errors
var (
	ErrBudgetTotalNegative       = errors.New("the total budget must not be negative")
	ErrAllocationAmountNegative  = errors.New("allocation amounts must not be negative")
	ErrAllocationsExceedTotal    = errors.New("the sum of all allocations must not exceed the total budget")
	ErrAllocationCategoryMissing = errors.New("every allocation needs a category")
)
