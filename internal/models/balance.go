package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Balance is the running account balance of a user.
//
// It is an incremental cache over the user's transactions, not a derived
// view: every transaction create, update and delete applies one signed
// increment. The invariant is best effort, there is no reconciliation job.
type Balance struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"uniqueIndex"`
	User           User            `json:"-"`
	CurrentBalance decimal.Decimal `json:"currentBalance" gorm:"type:DECIMAL(20,8)" example:"1317.34"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// BalanceForUser returns the balance of a user, lazily creating a zero
// balance on first read.
func BalanceForUser(db *gorm.DB, userID uuid.UUID) (Balance, error) {
	var balance Balance
	err := db.Where(&Balance{UserID: userID}).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		balance = Balance{
			UserID:         userID,
			CurrentBalance: decimal.Zero,
			LastUpdated:    time.Now().In(time.UTC),
		}
		err = db.Create(&balance).Error
	}
	if err != nil {
		return Balance{}, err
	}

	return balance, nil
}

// applyBalanceDelta increments the balance of a user by a signed amount as
// a single UPDATE, so concurrent increments from other requests are never
// lost. The balance record is created first if the user has none yet.
func applyBalanceDelta(db *gorm.DB, userID uuid.UUID, delta decimal.Decimal) error {
	if _, err := BalanceForUser(db, userID); err != nil {
		return err
	}

	return db.Model(&Balance{}).
		Where(&Balance{UserID: userID}).
		UpdateColumns(map[string]interface{}{
			"current_balance": gorm.Expr("current_balance + ?", delta),
			"last_updated":    time.Now().In(time.UTC),
			"updated_at":      time.Now().In(time.UTC),
		}).Error
}

// OnTransactionCreated applies the effect of a new transaction to the
// balance.
func OnTransactionCreated(db *gorm.DB, t Transaction) error {
	return applyBalanceDelta(db, t.UserID, t.Effect())
}

// OnTransactionUpdated applies the effect difference of a changed
// transaction as one increment. Computing newEffect - oldEffect up front
// avoids the intermediate reversed-only state a reverse-then-apply pair
// would leave on a crash between the two writes.
func OnTransactionUpdated(db *gorm.DB, old, updated Transaction) error {
	return applyBalanceDelta(db, updated.UserID, updated.Effect().Sub(old.Effect()))
}

// OnTransactionDeleted reverses the effect of a deleted transaction.
func OnTransactionDeleted(db *gorm.DB, t Transaction) error {
	return applyBalanceDelta(db, t.UserID, t.Effect().Neg())
}
