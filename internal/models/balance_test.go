package models_test

import (
	"time"

	"github.com/credence-finance/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) balanceEquals(user models.User, expected float64) {
	balance, err := models.BalanceForUser(models.DB, user.ID)
	suite.Require().NoError(err)
	suite.Assert().True(
		balance.CurrentBalance.Equal(decimal.NewFromFloat(expected)),
		"balance is %s, expected %f", balance.CurrentBalance, expected,
	)
}

func (suite *TestSuiteStandard) TestBalanceLazilyCreated() {
	user := suite.createTestUser("lazy-balance@example.com")

	balance, err := models.BalanceForUser(models.DB, user.ID)
	suite.Require().NoError(err)
	suite.Assert().True(balance.CurrentBalance.IsZero())
	suite.Assert().False(balance.LastUpdated.IsZero())

	// The second read returns the same record
	again, err := models.BalanceForUser(models.DB, user.ID)
	suite.Require().NoError(err)
	suite.Assert().Equal(balance.ID, again.ID)
}

func (suite *TestSuiteStandard) TestBalanceTransactionLifecycle() {
	user := suite.createTestUser("lifecycle@example.com")

	income := suite.createTestTransaction(user, models.Income, 500, "income", time.Now())
	suite.Require().NoError(models.OnTransactionCreated(models.DB, income))
	suite.balanceEquals(user, 500)

	expense := suite.createTestTransaction(user, models.Expense, 200, "food", time.Now())
	suite.Require().NoError(models.OnTransactionCreated(models.DB, expense))
	suite.balanceEquals(user, 300)

	suite.Require().NoError(models.DB.Delete(&expense).Error)
	suite.Require().NoError(models.OnTransactionDeleted(models.DB, expense))
	suite.balanceEquals(user, 500)
}

func (suite *TestSuiteStandard) TestBalanceTransactionUpdated() {
	user := suite.createTestUser("update-balance@example.com")

	income := suite.createTestTransaction(user, models.Income, 500, "income", time.Now())
	suite.Require().NoError(models.OnTransactionCreated(models.DB, income))

	old := income
	income.Amount = decimal.NewFromFloat(800)
	suite.Require().NoError(models.DB.Save(&income).Error)
	suite.Require().NoError(models.OnTransactionUpdated(models.DB, old, income))
	suite.balanceEquals(user, 800)

	// Changing the kind flips the sign in a single increment
	old = income
	income.Kind = models.Expense
	income.Amount = decimal.NewFromFloat(100)
	suite.Require().NoError(models.DB.Save(&income).Error)
	suite.Require().NoError(models.OnTransactionUpdated(models.DB, old, income))
	suite.balanceEquals(user, -100)
}

func (suite *TestSuiteStandard) TestBalancePerUser() {
	user := suite.createTestUser("user-a@example.com")
	other := suite.createTestUser("user-b@example.com")

	income := suite.createTestTransaction(user, models.Income, 42, "income", time.Now())
	suite.Require().NoError(models.OnTransactionCreated(models.DB, income))

	suite.balanceEquals(user, 42)
	suite.balanceEquals(other, 0)
}
