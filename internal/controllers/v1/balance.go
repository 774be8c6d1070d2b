package v1

import (
	"net/http"
	"sort"
	"time"

	"github.com/credence-finance/backend/internal/httputil"
	"github.com/credence-finance/backend/internal/models"
	"github.com/credence-finance/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterBalanceRoutes registers the routes for the balance with
// the RouterGroup that is passed.
func RegisterBalanceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBalance)
	r.GET("", GetBalance)

	r.OPTIONS("/trend", OptionsBalance)
	r.GET("/trend", GetBalanceTrend)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balance
// @Success		204
// @Router			/v1/balance [options]
func OptionsBalance(c *gin.Context) {
	httputil.OptionsGet(c)
}

// MonthlyStats sums the current month's transactions by kind.
type MonthlyStats struct {
	TotalIncome   decimal.Decimal `json:"totalIncome" example:"3000"`
	TotalExpenses decimal.Decimal `json:"totalExpenses" example:"1200"`
}

// BalanceResponse is the balance and spending summary of the user.
type BalanceResponse struct {
	CurrentBalance     decimal.Decimal            `json:"currentBalance" example:"1800"`
	MonthlyStats       MonthlyStats               `json:"monthlyStats"`
	SpendingByCategory map[string]decimal.Decimal `json:"spendingByCategory"` // Keyed by internal category key
}

// @Summary		Get balance
// @Description	Returns the running balance and the current month's spending summary. A zero balance is created on first read.
// @Tags			Balance
// @Produce		json
// @Success		200	{object}	BalanceResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Security		BearerAuth
// @Router			/v1/balance [get]
func GetBalance(c *gin.Context) {
	user := currentUser(c)

	balance, err := models.BalanceForUser(models.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transactions, err := models.TransactionsForPeriod(models.DB, user.ID, types.MonthOf(time.Now().In(time.UTC)))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	response := BalanceResponse{
		CurrentBalance:     balance.CurrentBalance,
		SpendingByCategory: make(map[string]decimal.Decimal),
	}

	for _, t := range transactions {
		if t.Kind == models.Income {
			response.MonthlyStats.TotalIncome = response.MonthlyStats.TotalIncome.Add(t.Amount)
			continue
		}

		response.MonthlyStats.TotalExpenses = response.MonthlyStats.TotalExpenses.Add(t.Amount)
		response.SpendingByCategory[t.Category] = response.SpendingByCategory[t.Category].Add(t.Amount)
	}

	c.JSON(http.StatusOK, response)
}

// TrendPoint is the running balance at the end of one day.
type TrendPoint struct {
	Date    string          `json:"date" example:"2024-03-14"`
	Balance decimal.Decimal `json:"balance" example:"1650"`
}

// @Summary		Balance trend
// @Description	Returns the day-by-day running balance over the last 30 days, starting from zero at the beginning of the window.
// @Tags			Balance
// @Produce		json
// @Success		200	{array}		TrendPoint
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Security		BearerAuth
// @Router			/v1/balance/trend [get]
func GetBalanceTrend(c *gin.Context) {
	since := time.Now().In(time.UTC).AddDate(0, 0, -30)

	var transactions []models.Transaction
	err := models.DB.
		Where(&models.Transaction{UserID: currentUser(c).ID}).
		Where("date >= ?", since).
		Find(&transactions).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	daily := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		day := t.Date.In(time.UTC).Format("2006-01-02")
		daily[day] = daily[day].Add(t.Effect())
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	trend := make([]TrendPoint, 0, len(days))
	running := decimal.Zero
	for _, day := range days {
		running = running.Add(daily[day])
		trend = append(trend, TrendPoint{Date: day, Balance: running})
	}

	c.JSON(http.StatusOK, trend)
}

// MonthComparison is one month of the income vs expense series.
type MonthComparison struct {
	Month    string          `json:"month" example:"Mar"`
	Year     int             `json:"year" example:"2024"`
	Income   decimal.Decimal `json:"income" example:"3000"`
	Expenses decimal.Decimal `json:"expenses" example:"1200"`
}

// @Summary		Monthly comparison
// @Description	Returns income and expense totals for the last six months, oldest first.
// @Tags			Balance
// @Produce		json
// @Success		200	{array}		MonthComparison
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Security		BearerAuth
// @Router			/v1/monthly-comparison [get]
func GetMonthlyComparison(c *gin.Context) {
	now := time.Now().In(time.UTC)
	first := types.MonthOf(now).AddDate(0, -5)

	var transactions []models.Transaction
	err := models.DB.
		Where(&models.Transaction{UserID: currentUser(c).ID}).
		Where("date >= ?", first.FirstInstant()).
		Find(&transactions).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	comparison := make([]MonthComparison, 0, 6)
	index := make(map[string]int)
	for i := 0; i < 6; i++ {
		month := first.AddDate(0, i)
		index[month.String()] = len(comparison)
		comparison = append(comparison, MonthComparison{
			Month: month.FirstInstant().Format("Jan"),
			Year:  month.Year(),
		})
	}

	for _, t := range transactions {
		i, ok := index[types.MonthOf(t.Date.In(time.UTC)).String()]
		if !ok {
			continue
		}

		if t.Kind == models.Income {
			comparison[i].Income = comparison[i].Income.Add(t.Amount)
		} else {
			comparison[i].Expenses = comparison[i].Expenses.Add(t.Amount)
		}
	}

	c.JSON(http.StatusOK, comparison)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balance
// @Success		204
// @Router			/v1/monthly-comparison [options]
func OptionsMonthlyComparison(c *gin.Context) {
	httputil.OptionsGet(c)
}
