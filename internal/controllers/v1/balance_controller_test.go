package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/credence-finance/backend/internal/controllers/v1"
	"github.com/credence-finance/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBalanceGet() {
	user, auth := suite.createTestUser("Test User", "balance@example.com")

	now := time.Now().In(time.UTC)
	suite.createTestTransaction(user, models.Income, 3000, "income", now)
	suite.createTestTransaction(user, models.Expense, 200, "food", now)
	suite.createTestTransaction(user, models.Expense, 150, "food", now)
	suite.createTestTransaction(user, models.Expense, 80, "shopping", now)

	recorder := suite.request(http.MethodGet, "/v1/balance", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.BalanceResponse
	suite.decodeResponse(&recorder, &response)

	suite.Assert().True(response.CurrentBalance.Equal(decimal.NewFromInt(2570)))
	suite.Assert().True(response.MonthlyStats.TotalIncome.Equal(decimal.NewFromInt(3000)))
	suite.Assert().True(response.MonthlyStats.TotalExpenses.Equal(decimal.NewFromInt(430)))

	// Spending by category is keyed by the internal key
	suite.Require().Len(response.SpendingByCategory, 2)
	suite.Assert().True(response.SpendingByCategory["food"].Equal(decimal.NewFromInt(350)))
	suite.Assert().True(response.SpendingByCategory["shopping"].Equal(decimal.NewFromInt(80)))
}

func (suite *TestSuiteStandard) TestBalanceGetEmpty() {
	_, auth := suite.createTestUser("Test User", "balance-empty@example.com")

	recorder := suite.request(http.MethodGet, "/v1/balance", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.BalanceResponse
	suite.decodeResponse(&recorder, &response)

	// The zero balance is created on first read
	suite.Assert().True(response.CurrentBalance.IsZero())
	suite.Assert().Empty(response.SpendingByCategory)
}

func (suite *TestSuiteStandard) TestBalanceTrend() {
	user, auth := suite.createTestUser("Test User", "trend@example.com")

	now := time.Now().In(time.UTC)
	suite.createTestTransaction(user, models.Income, 1000, "income", now.AddDate(0, 0, -3))
	suite.createTestTransaction(user, models.Expense, 200, "food", now.AddDate(0, 0, -1))
	suite.createTestTransaction(user, models.Expense, 100, "food", now.AddDate(0, 0, -1))

	// Outside the 30 day window
	suite.createTestTransaction(user, models.Income, 9999, "income", now.AddDate(0, 0, -40))

	recorder := suite.request(http.MethodGet, "/v1/balance/trend", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var trend []v1.TrendPoint
	suite.decodeResponse(&recorder, &trend)

	// One point per day with activity, oldest first, running balance
	suite.Require().Len(trend, 2)
	suite.Assert().Equal(now.AddDate(0, 0, -3).Format("2006-01-02"), trend[0].Date)
	suite.Assert().True(trend[0].Balance.Equal(decimal.NewFromInt(1000)))
	suite.Assert().Equal(now.AddDate(0, 0, -1).Format("2006-01-02"), trend[1].Date)
	suite.Assert().True(trend[1].Balance.Equal(decimal.NewFromInt(700)))
}

func (suite *TestSuiteStandard) TestMonthlyComparison() {
	user, auth := suite.createTestUser("Test User", "comparison@example.com")

	now := time.Now().In(time.UTC)
	suite.createTestTransaction(user, models.Income, 3000, "income", now)
	suite.createTestTransaction(user, models.Expense, 500, "food", now)

	recorder := suite.request(http.MethodGet, "/v1/monthly-comparison", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var comparison []v1.MonthComparison
	suite.decodeResponse(&recorder, &comparison)

	// Six months, oldest first, the current month is the last entry
	suite.Require().Len(comparison, 6)

	current := comparison[5]
	suite.Assert().Equal(now.Format("Jan"), current.Month)
	suite.Assert().Equal(now.Year(), current.Year)
	suite.Assert().True(current.Income.Equal(decimal.NewFromInt(3000)))
	suite.Assert().True(current.Expenses.Equal(decimal.NewFromInt(500)))

	// The other months are empty
	suite.Assert().True(comparison[0].Income.IsZero())
	suite.Assert().True(comparison[0].Expenses.IsZero())
}
