package v1

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/credence-finance/backend/internal/categories"
	"github.com/credence-finance/backend/internal/httputil"
	"github.com/credence-finance/backend/internal/models"
	"github.com/credence-finance/backend/internal/reconcile"
	"github.com/credence-finance/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RegisterExpenseRoutes registers the routes for expense reports with
// the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/breakdown", OptionsExpenses)
	r.GET("/breakdown", GetExpenseBreakdown)

	r.OPTIONS("/categories", OptionsExpenses)
	r.GET("/categories", GetExpenseCategories)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses/breakdown [options]
func OptionsExpenses(c *gin.Context) {
	httputil.OptionsGet(c)
}

// BreakdownRow is the per-category line of the expense breakdown.
type BreakdownRow struct {
	Category        string          `json:"category" example:"Food & Dining"`
	Budgeted        decimal.Decimal `json:"budgeted" example:"400"`
	Spent           decimal.Decimal `json:"spent" example:"250"`
	Remaining       decimal.Decimal `json:"remaining" example:"150"` // Floored at zero
	PercentageUsed  decimal.Decimal `json:"percentageUsed" example:"62.5"`
	Transactions    uint            `json:"transactions" example:"12"`
	LastTransaction *time.Time      `json:"lastTransaction"`
	Status          string          `json:"status" example:"good"`
}

// BreakdownTotals sums the rows of the breakdown.
type BreakdownTotals struct {
	Budgeted  decimal.Decimal `json:"budgeted" example:"2000"`
	Spent     decimal.Decimal `json:"spent" example:"1200"`
	Remaining decimal.Decimal `json:"remaining" example:"800"`
}

// BreakdownResponse is the expense breakdown of one month.
type BreakdownResponse struct {
	Breakdown []BreakdownRow  `json:"breakdown"`
	Totals    BreakdownTotals `json:"totals"`
	Month     int             `json:"month" example:"3"`
	Year      int             `json:"year" example:"2024"`
}

// @Summary		Expense breakdown
// @Description	Returns the per-category expense breakdown of the current month. Every known category is included, remaining amounts are floored at zero.
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	BreakdownResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Security		BearerAuth
// @Router			/v1/expenses/breakdown [get]
func GetExpenseBreakdown(c *gin.Context) {
	user := currentUser(c)
	period := types.MonthOf(time.Now().In(time.UTC))

	var budget *reconcile.Budget
	var transactions []models.Transaction

	g, _ := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		model, err := models.BudgetForMonth(models.DB, user.ID, period)
		if errors.Is(err, models.ErrResourceNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		budget = reconcileBudget(model)
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = models.TransactionsForPeriod(models.DB, user.ID, period)
		return err
	})

	if err := g.Wait(); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	report := reconcile.Reconcile(budget, reconcileActivity(models.ExpenseActivity(transactions)), reconcile.Options{
		Sort:           reconcile.SortPercentageDescending,
		ClampRemaining: true,
		SeedCategories: expenseCategories(),
	})

	response := BreakdownResponse{
		Breakdown: make([]BreakdownRow, 0, len(report.Categories)),
		Month:     int(period.Month()),
		Year:      period.Year(),
	}

	// The breakdown totals sum the rows, they do not use the total budget.
	// With the remaining amounts floored this shows how much is left in
	// categories that still have room.
	for _, row := range report.Categories {
		response.Breakdown = append(response.Breakdown, BreakdownRow{
			Category:        row.Category,
			Budgeted:        row.Budgeted,
			Spent:           row.Spent,
			Remaining:       row.Remaining,
			PercentageUsed:  row.PercentageUsed,
			Transactions:    row.Transactions,
			LastTransaction: row.LastTransaction,
			Status:          string(row.Status),
		})

		response.Totals.Budgeted = response.Totals.Budgeted.Add(row.Budgeted)
		response.Totals.Spent = response.Totals.Spent.Add(row.Spent)
		response.Totals.Remaining = response.Totals.Remaining.Add(row.Remaining)
	}

	c.JSON(http.StatusOK, response)
}

// expenseCategories returns the display names of all expense categories,
// i.e. the category table without "Income".
func expenseCategories() []string {
	names := make([]string, 0, len(categories.DisplayNames()))
	for _, name := range categories.DisplayNames() {
		if name == "Income" {
			continue
		}

		names = append(names, name)
	}

	return names
}

// CategoryExpense is the spending of one category with its share of the
// total.
type CategoryExpense struct {
	Name       string          `json:"name" example:"Food & Dining"`
	Value      decimal.Decimal `json:"value" example:"250"`
	Percentage string          `json:"percentage" example:"20.8%"`
}

// CategoryExpensesResponse lists the current month's spending by category.
type CategoryExpensesResponse struct {
	CategoryExpenses []CategoryExpense `json:"categoryExpenses"`
	Total            decimal.Decimal   `json:"total" example:"1200"`
}

// @Summary		Expenses by category
// @Description	Returns the current month's spending grouped by category, largest first. Categories without spending are omitted.
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	CategoryExpensesResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Security		BearerAuth
// @Router			/v1/expenses/categories [get]
func GetExpenseCategories(c *gin.Context) {
	period := types.MonthOf(time.Now().In(time.UTC))

	transactions, err := models.TransactionsForPeriod(models.DB, currentUser(c).ID, period)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	activity := models.ExpenseActivity(transactions)

	total := decimal.Zero
	for _, a := range activity {
		total = total.Add(a.Spent)
	}

	response := CategoryExpensesResponse{
		CategoryExpenses: make([]CategoryExpense, 0, len(activity)),
		Total:            total,
	}

	for _, a := range activity {
		if !a.Spent.IsPositive() {
			continue
		}

		percentage := "0%"
		if total.IsPositive() {
			percentage = a.Spent.Mul(decimal.NewFromInt(100)).Div(total).StringFixed(1) + "%"
		}

		response.CategoryExpenses = append(response.CategoryExpenses, CategoryExpense{
			Name:       categories.ToDisplayName(a.Category),
			Value:      a.Spent,
			Percentage: percentage,
		})
	}

	sort.SliceStable(response.CategoryExpenses, func(i, j int) bool {
		return response.CategoryExpenses[i].Value.GreaterThan(response.CategoryExpenses[j].Value)
	})

	c.JSON(http.StatusOK, response)
}
