package v1

import (
	"net/http"

	"github.com/credence-finance/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Transactions      string `json:"transactions" example:"https://example.com/v1/transactions"`
	Budgets           string `json:"budgets" example:"https://example.com/v1/budgets"`
	BudgetStatus      string `json:"budgetStatus" example:"https://example.com/v1/budgets/status"`
	ExpenseBreakdown  string `json:"expenseBreakdown" example:"https://example.com/v1/expenses/breakdown"`
	ExpenseCategories string `json:"expenseCategories" example:"https://example.com/v1/expenses/categories"`
	Balance           string `json:"balance" example:"https://example.com/v1/balance"`
	BalanceTrend      string `json:"balanceTrend" example:"https://example.com/v1/balance/trend"`
	MonthlyComparison string `json:"monthlyComparison" example:"https://example.com/v1/monthly-comparison"`
	Analyze           string `json:"analyze" example:"https://example.com/v1/analyze"`
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			General
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Transactions:      "/v1/transactions",
			Budgets:           "/v1/budgets",
			BudgetStatus:      "/v1/budgets/status",
			ExpenseBreakdown:  "/v1/expenses/breakdown",
			ExpenseCategories: "/v1/expenses/categories",
			Balance:           "/v1/balance",
			BalanceTrend:      "/v1/balance/trend",
			MonthlyComparison: "/v1/monthly-comparison",
			Analyze:           "/v1/analyze",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
