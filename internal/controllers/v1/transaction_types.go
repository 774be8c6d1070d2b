package v1

import (
	"time"

	"github.com/credence-finance/backend/internal/categories"
	"github.com/credence-finance/backend/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters of a
// transaction. The category can be the internal key or the display name.
type TransactionEditable struct {
	Kind        models.TransactionKind `json:"kind" example:"expense"`
	Amount      decimal.Decimal        `json:"amount" example:"14.95"`
	Category    string                 `json:"category" example:"Food & Dining"`
	Description string                 `json:"description" example:"Groceries"`
	Date        time.Time              `json:"date"` // Defaults to the time the transaction is created
}

func (editable TransactionEditable) model(user models.User) models.Transaction {
	return models.Transaction{
		UserID:      user.ID,
		Kind:        editable.Kind,
		Amount:      editable.Amount,
		Category:    categories.ToInternalKey(editable.Category),
		Description: editable.Description,
		Date:        editable.Date,
	}
}

// Transaction is the API representation of a transaction. The category is
// the display name.
type Transaction struct {
	models.DefaultModel
	Kind        models.TransactionKind `json:"kind" example:"expense"`
	Amount      decimal.Decimal        `json:"amount" example:"14.95"`
	Category    string                 `json:"category" example:"Food & Dining"`
	Description string                 `json:"description" example:"Groceries"`
	Date        time.Time              `json:"date"`
}

func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		Kind:         model.Kind,
		Amount:       model.Amount,
		Category:     categories.ToDisplayName(model.Category),
		Description:  model.Description,
		Date:         model.Date,
	}
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`  // Data for the transaction
	Error *string      `json:"error"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`  // List of transactions
	Error *string       `json:"error"` // The error, if any occurred
}

// TransactionQueryFilter contains the filters for the transaction list.
type TransactionQueryFilter struct {
	Category string `form:"category"` // By category, key or display name. "all" is ignored.
	Kind     string `form:"kind"`     // By transaction kind. "all" is ignored.
	Search   string `form:"search"`   // Glob match on description and category
	Offset   uint   `form:"offset"`   // The offset of the first transaction returned. Defaults to 0.
	Limit    int    `form:"limit"`    // Maximum number of transactions to return. Defaults to 50.
}
