package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/credence-finance/backend/internal/controllers/v1"
	"github.com/credence-finance/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionsUnauthorized() {
	for _, tt := range []struct {
		headers map[string]string
		status  int
	}{
		{nil, http.StatusUnauthorized},
		{map[string]string{"Authorization": "not-a-bearer-token"}, http.StatusUnauthorized},
		{map[string]string{"Authorization": "Bearer unknown"}, http.StatusUnauthorized},
	} {
		recorder := suite.request(http.MethodGet, "/v1/transactions", nil, tt.headers)
		suite.assertHTTPStatus(&recorder, tt.status)
	}
}

func (suite *TestSuiteStandard) TestTransactionCreate() {
	user, auth := suite.createTestUser("Test User", "create-tx@example.com")

	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Kind:        models.Expense,
		Amount:      decimal.NewFromFloat(14.95),
		Category:    "Food & Dining",
		Description: "Groceries",
	}, auth)
	suite.assertHTTPStatus(&recorder, http.StatusCreated)

	var response v1.TransactionResponse
	suite.decodeResponse(&recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("Food & Dining", response.Data.Category)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromFloat(14.95)))

	// The balance reflects the new expense
	balance, err := models.BalanceForUser(models.DB, user.ID)
	suite.Require().NoError(err)
	suite.Assert().True(balance.CurrentBalance.Equal(decimal.NewFromFloat(-14.95)))
}

func (suite *TestSuiteStandard) TestTransactionCreateInvalid() {
	_, auth := suite.createTestUser("Test User", "create-invalid@example.com")

	tests := []struct {
		name string
		body any
	}{
		{"no body", ""},
		{"broken JSON", `{ "kind": `},
		{"invalid kind", v1.TransactionEditable{Kind: "transfer", Amount: decimal.NewFromFloat(1)}},
		{"zero amount", v1.TransactionEditable{Kind: models.Expense}},
		{"negative amount", v1.TransactionEditable{Kind: models.Expense, Amount: decimal.NewFromFloat(-1)}},
	}

	for _, tt := range tests {
		recorder := suite.request(http.MethodPost, "/v1/transactions", tt.body, auth)
		suite.Require().Equal(http.StatusBadRequest, recorder.Code, "%s: response is %s", tt.name, recorder.Body.String())
	}
}

func (suite *TestSuiteStandard) TestTransactionsList() {
	user, auth := suite.createTestUser("Test User", "list-tx@example.com")
	other, _ := suite.createTestUser("Other User", "other-list@example.com")

	older := suite.createTestTransaction(user, models.Expense, 10, "food", time.Now().AddDate(0, 0, -2))
	newer := suite.createTestTransaction(user, models.Income, 500, "income", time.Now())
	suite.createTestTransaction(other, models.Expense, 99, "food", time.Now())

	recorder := suite.request(http.MethodGet, "/v1/transactions", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.TransactionListResponse
	suite.decodeResponse(&recorder, &response)

	// Only the user's own transactions, newest first
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(newer.ID, response.Data[0].ID)
	suite.Assert().Equal(older.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestTransactionsListFilters() {
	user, auth := suite.createTestUser("Test User", "filter-tx@example.com")

	suite.createTestTransaction(user, models.Expense, 10, "food", time.Now())
	suite.createTestTransaction(user, models.Expense, 20, "shopping", time.Now())
	suite.createTestTransaction(user, models.Income, 500, "income", time.Now())

	tests := []struct {
		query string
		count int
	}{
		{"category=food", 1},
		{"category=Food+%26+Dining", 1},
		{"category=all", 3},
		{"kind=expense", 2},
		{"kind=income", 1},
		{"kind=all", 3},
		{"kind=expense&category=shopping", 1},
		{"limit=2", 2},
		{"offset=2", 1},
	}

	for _, tt := range tests {
		recorder := suite.request(http.MethodGet, "/v1/transactions?"+tt.query, nil, auth)
		suite.assertHTTPStatus(&recorder, http.StatusOK)

		var response v1.TransactionListResponse
		suite.decodeResponse(&recorder, &response)
		suite.Assert().Len(response.Data, tt.count, "wrong count for query %q", tt.query)
	}
}

func (suite *TestSuiteStandard) TestTransactionsListSearch() {
	user, auth := suite.createTestUser("Test User", "search-tx@example.com")

	transaction := models.Transaction{
		UserID:      user.ID,
		Kind:        models.Expense,
		Amount:      decimal.NewFromFloat(42),
		Category:    "food",
		Description: "Saturday Groceries",
	}
	suite.Require().NoError(models.DB.Create(&transaction).Error)

	tests := []struct {
		search string
		count  int
	}{
		{"groceries", 1},
		{"GROCERIES", 1},
		{"sat*gro", 1},
		{"dining", 1}, // matches the display category
		{"fuel", 0},
	}

	for _, tt := range tests {
		recorder := suite.request(http.MethodGet, "/v1/transactions?search="+tt.search, nil, auth)
		suite.assertHTTPStatus(&recorder, http.StatusOK)

		var response v1.TransactionListResponse
		suite.decodeResponse(&recorder, &response)
		suite.Assert().Len(response.Data, tt.count, "wrong count for search %q", tt.search)
	}
}

func (suite *TestSuiteStandard) TestTransactionGet() {
	user, auth := suite.createTestUser("Test User", "get-tx@example.com")
	transaction := suite.createTestTransaction(user, models.Expense, 10, "food", time.Now())

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.TransactionResponse
	suite.decodeResponse(&recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(transaction.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestTransactionGetErrors() {
	user, auth := suite.createTestUser("Test User", "get-tx-errors@example.com")
	_, otherAuth := suite.createTestUser("Other User", "get-tx-other@example.com")
	transaction := suite.createTestTransaction(user, models.Expense, 10, "food", time.Now())

	// Not a UUID
	recorder := suite.request(http.MethodGet, "/v1/transactions/not-a-uuid", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)

	// Unknown ID
	recorder = suite.request(http.MethodGet, "/v1/transactions/2c57a04e-b249-4d4a-93fd-39a3d4925a7b", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)

	// Another user's transaction stays hidden
	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), nil, otherAuth)
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionUpdate() {
	user, auth := suite.createTestUser("Test User", "update-tx@example.com")
	transaction := suite.createTestTransaction(user, models.Income, 500, "income", time.Now())

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", transaction.ID), v1.TransactionEditable{
		Kind:     models.Income,
		Amount:   decimal.NewFromFloat(800),
		Category: "income",
	}, auth)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.TransactionResponse
	suite.decodeResponse(&recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromInt(800)))

	// The balance moved by the difference, not by reverse-then-apply
	balance, err := models.BalanceForUser(models.DB, user.ID)
	suite.Require().NoError(err)
	suite.Assert().True(balance.CurrentBalance.Equal(decimal.NewFromInt(800)))
}

func (suite *TestSuiteStandard) TestTransactionDelete() {
	user, auth := suite.createTestUser("Test User", "delete-tx@example.com")
	transaction := suite.createTestTransaction(user, models.Expense, 200, "food", time.Now())

	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", transaction.ID), nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)

	// The delete reversed the effect on the balance
	balance, err := models.BalanceForUser(models.DB, user.ID)
	suite.Require().NoError(err)
	suite.Assert().True(balance.CurrentBalance.IsZero())

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionOptions() {
	recorder := suite.request(http.MethodOptions, "/v1/transactions", nil)
	// OPTIONS requests still require a session
	suite.assertHTTPStatus(&recorder, http.StatusUnauthorized)

	_, auth := suite.createTestUser("Test User", "options-tx@example.com")
	recorder = suite.request(http.MethodOptions, "/v1/transactions", nil, auth)
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, POST", recorder.Header().Get("allow"))
}
