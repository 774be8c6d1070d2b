package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/credence-finance/backend/internal/controllers/v1"
	"github.com/credence-finance/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestExpenseBreakdown() {
	user, auth := suite.createTestUser("Test User", "breakdown@example.com")

	now := time.Now().In(time.UTC)
	suite.setTestBudget(auth, v1.BudgetEditable{
		Month:       int(now.Month()),
		Year:        now.Year(),
		TotalBudget: decimal.NewFromFloat(500),
		Allocations: []v1.AllocationEditable{
			{Category: "food", Amount: decimal.NewFromFloat(200)},
		},
	})

	suite.createTestTransaction(user, models.Expense, 250, "food", now)
	suite.createTestTransaction(user, models.Expense, 40, "shopping", now)
	suite.createTestTransaction(user, models.Income, 3000, "income", now)

	recorder := suite.request(http.MethodGet, "/v1/expenses/breakdown", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.BreakdownResponse
	suite.decodeResponse(&recorder, &response)

	suite.Assert().Equal(int(now.Month()), response.Month)
	suite.Assert().Equal(now.Year(), response.Year)

	// All expense categories appear, "Income" does not
	suite.Require().Len(response.Breakdown, 7)

	rows := make(map[string]v1.BreakdownRow)
	for _, row := range response.Breakdown {
		suite.Assert().NotEqual("Income", row.Category)
		rows[row.Category] = row
	}

	// Overspending is floored at zero in the per-category remaining
	food := rows["Food & Dining"]
	suite.Assert().True(food.Remaining.IsZero())
	suite.Assert().Equal("exceeded", food.Status)
	suite.Assert().Equal(uint(1), food.Transactions)
	suite.Require().NotNil(food.LastTransaction)

	housing := rows["Housing"]
	suite.Assert().True(housing.Spent.IsZero())
	suite.Assert().Equal("good", housing.Status)

	// The totals sum the rows, not the total budget
	suite.Assert().True(response.Totals.Budgeted.Equal(decimal.NewFromInt(200)))
	suite.Assert().True(response.Totals.Spent.Equal(decimal.NewFromInt(290)))
	suite.Assert().True(response.Totals.Remaining.IsZero())
}

func (suite *TestSuiteStandard) TestExpenseBreakdownEmpty() {
	_, auth := suite.createTestUser("Test User", "breakdown-empty@example.com")

	recorder := suite.request(http.MethodGet, "/v1/expenses/breakdown", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.BreakdownResponse
	suite.decodeResponse(&recorder, &response)

	suite.Require().Len(response.Breakdown, 7)
	suite.Assert().True(response.Totals.Spent.IsZero())
}

func (suite *TestSuiteStandard) TestExpenseCategories() {
	user, auth := suite.createTestUser("Test User", "expense-categories@example.com")

	now := time.Now().In(time.UTC)
	suite.createTestTransaction(user, models.Expense, 250, "food", now)
	suite.createTestTransaction(user, models.Expense, 750, "housing", now)
	suite.createTestTransaction(user, models.Income, 3000, "income", now)

	recorder := suite.request(http.MethodGet, "/v1/expenses/categories", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.CategoryExpensesResponse
	suite.decodeResponse(&recorder, &response)

	suite.Assert().True(response.Total.Equal(decimal.NewFromInt(1000)))

	// Largest first, income does not appear
	suite.Require().Len(response.CategoryExpenses, 2)
	suite.Assert().Equal("Housing", response.CategoryExpenses[0].Name)
	suite.Assert().Equal("75.0%", response.CategoryExpenses[0].Percentage)
	suite.Assert().Equal("Food & Dining", response.CategoryExpenses[1].Name)
	suite.Assert().Equal("25.0%", response.CategoryExpenses[1].Percentage)
}

func (suite *TestSuiteStandard) TestExpenseCategoriesEmpty() {
	_, auth := suite.createTestUser("Test User", "expense-categories-empty@example.com")

	recorder := suite.request(http.MethodGet, "/v1/expenses/categories", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.CategoryExpensesResponse
	suite.decodeResponse(&recorder, &response)

	suite.Assert().Empty(response.CategoryExpenses)
	suite.Assert().True(response.Total.IsZero())
}
