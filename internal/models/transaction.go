package models

import (
	"strings"
	"time"

	"github.com/credence-finance/backend/internal/categories"
	"github.com/credence-finance/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind determines whether a transaction adds to or subtracts
// from the balance.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// Transaction represents a single income or expense of a user.
type Transaction struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId" gorm:"index"`
	User        User            `json:"-"`
	Kind        TransactionKind `json:"kind" example:"expense"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.95"`
	Category    string          `json:"category" example:"food"` // internal category key
	Description string          `json:"description" example:"Groceries"`
	Date        time.Time       `json:"date"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave
//   - validates the kind and the amount
//   - normalizes the category to its internal key
//   - sets the timezone for the date to UTC, defaulting to now
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Kind != Income && t.Kind != Expense {
		return ErrTransactionKindInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	t.Category = categories.ToInternalKey(strings.TrimSpace(t.Category))
	t.Description = strings.TrimSpace(t.Description)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// Effect is the signed amount the transaction contributes to the balance.
func (t Transaction) Effect() decimal.Decimal {
	if t.Kind == Income {
		return t.Amount
	}

	return t.Amount.Neg()
}

// TransactionsForPeriod returns all transactions of a user inside a month,
// bounds inclusive.
func TransactionsForPeriod(db *gorm.DB, userID uuid.UUID, month types.Month) ([]Transaction, error) {
	var transactions []Transaction
	err := db.
		Where(&Transaction{UserID: userID}).
		Where("date >= ? AND date <= ?", month.FirstInstant(), month.LastInstant()).
		Find(&transactions).Error

	return transactions, err
}

// CategoryActivity is the aggregated expense activity for one category.
type CategoryActivity struct {
	Category        string
	Spent           decimal.Decimal
	Transactions    uint
	LastTransaction *time.Time
}

// ExpenseActivity groups the expense transactions of a slice by internal
// category key, summing amounts and tracking the most recent date. The
// result is ordered by first occurrence, so it is deterministic for a given
// input order.
func ExpenseActivity(transactions []Transaction) []CategoryActivity {
	var activity []CategoryActivity
	index := make(map[string]int)

	for _, t := range transactions {
		if t.Kind != Expense {
			continue
		}

		i, ok := index[t.Category]
		if !ok {
			activity = append(activity, CategoryActivity{Category: t.Category})
			i = len(activity) - 1
			index[t.Category] = i
		}

		activity[i].Spent = activity[i].Spent.Add(t.Amount)
		activity[i].Transactions++

		if activity[i].LastTransaction == nil || t.Date.After(*activity[i].LastTransaction) {
			date := t.Date
			activity[i].LastTransaction = &date
		}
	}

	return activity
}
