package models

import (
	"errors"
	"strings"

	"github.com/credence-finance/backend/internal/categories"
	"github.com/credence-finance/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the spending plan of a user for one month.
//
// There is exactly one budget per user and month. Saving a budget for a
// month that already has one replaces it, see UpsertBudget.
type Budget struct {
	DefaultModel
	UserID      uuid.UUID          `json:"userId" gorm:"uniqueIndex:idx_budgets_user_month"`
	User        User               `json:"-"`
	Month       types.Month        `json:"month" gorm:"uniqueIndex:idx_budgets_user_month" example:"2024-03-01T00:00:00Z"`
	TotalBudget decimal.Decimal    `json:"totalBudget" gorm:"type:DECIMAL(20,8)" example:"2000"`
	Allocations []BudgetAllocation `json:"allocations" gorm:"constraint:OnDelete:CASCADE"`
}

// BudgetAllocation is a single category line item of a budget.
// The position preserves the order the user saved the allocations in.
type BudgetAllocation struct {
	DefaultModel
	BudgetID uuid.UUID       `json:"-" gorm:"index"`
	Category string          `json:"category" example:"food"` // internal category key
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"400"`
	Position uint            `json:"-"`
}

// AllocationSum returns the sum of all allocation amounts.
func (b Budget) AllocationSum() decimal.Decimal {
	sum := decimal.Zero
	for _, allocation := range b.Allocations {
		sum = sum.Add(allocation.Amount)
	}

	return sum
}

// Unallocated returns the part of the total budget that no allocation
// claims.
func (b Budget) Unallocated() decimal.Decimal {
	return b.TotalBudget.Sub(b.AllocationSum())
}

// BeforeSave validates the budget and normalizes its allocations.
// Validation happens here so that no budget that violates the allocation
// invariant can ever be written.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if b.TotalBudget.IsNegative() {
		return ErrBudgetTotalNegative
	}

	for i := range b.Allocations {
		allocation := &b.Allocations[i]

		allocation.Category = categories.ToInternalKey(strings.TrimSpace(allocation.Category))
		if allocation.Category == "" {
			return ErrAllocationCategoryMissing
		}

		if allocation.Amount.IsNegative() {
			return ErrAllocationAmountNegative
		}

		allocation.Position = uint(i)
	}

	if b.AllocationSum().GreaterThan(b.TotalBudget) {
		return ErrAllocationsExceedTotal
	}

	return nil
}

// BudgetForMonth returns the budget of a user for a month with its
// allocations in saved order. Returns ErrResourceNotFound when the user has
// no budget for the month.
func BudgetForMonth(db *gorm.DB, userID uuid.UUID, month types.Month) (Budget, error) {
	var budget Budget
	err := db.
		Preload("Allocations", func(db *gorm.DB) *gorm.DB {
			return db.Order("budget_allocations.position ASC")
		}).
		Where(&Budget{UserID: userID}).
		Where("month = ?", month).
		First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Budget{}, ErrResourceNotFound
	}
	if err != nil {
		return Budget{}, err
	}

	return budget, nil
}

// UpsertBudget creates the budget for the user and month or replaces the
// existing one. The allocation list is replaced wholesale.
func UpsertBudget(db *gorm.DB, budget *Budget) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing Budget
		err := tx.
			Where(&Budget{UserID: budget.UserID}).
			Where("month = ?", budget.Month).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil {
			budget.ID = existing.ID
			budget.CreatedAt = existing.CreatedAt

			err = tx.Unscoped().
				Where(&BudgetAllocation{BudgetID: existing.ID}).
				Delete(&BudgetAllocation{}).Error
			if err != nil {
				return err
			}

			return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(budget).Error
		}

		return tx.Create(budget).Error
	})
}
