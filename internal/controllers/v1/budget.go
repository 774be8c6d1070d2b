package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/credence-finance/backend/internal/httputil"
	"github.com/credence-finance/backend/internal/models"
	"github.com/credence-finance/backend/internal/reconcile"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBudget)
	r.GET("", GetBudget)
	r.POST("", SetBudget)

	r.OPTIONS("/status", OptionsBudgetStatus)
	r.GET("/status", GetBudgetStatus)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudget(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets/status [options]
func OptionsBudgetStatus(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Set budget
// @Description	Creates the budget for a month or replaces the existing one
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		401		{object}	httpError
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Security		BearerAuth
// @Router			/v1/budgets [post]
func SetBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	budget, err := editable.model(currentUser(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	if err := models.UpsertBudget(models.DB, &budget); err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	data := newBudget(budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Get budget
// @Description	Returns the budget for a month
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			month	query	int	false	"Month, 1 to 12. Defaults to the current month."
// @Param			year	query	int	false	"Year. Defaults to the current year."
// @Security		BearerAuth
// @Router			/v1/budgets [get]
func GetBudget(c *gin.Context) {
	var query PeriodQuery
	if err := c.Bind(&query); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &e})
		return
	}

	period, err := query.period(time.Now())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	budget, err := models.BudgetForMonth(models.DB, currentUser(c).ID, period)
	if errors.Is(err, models.ErrResourceNotFound) {
		e := errNoBudget.Error()
		c.JSON(http.StatusNotFound, BudgetResponse{Error: &e})
		return
	}
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	data := newBudget(budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Budget status
// @Description	Returns the spend-vs-budget overview for a month. Without a budget, the overview reports all spending as unbudgeted instead of failing.
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetOverview
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			month	query	int	false	"Month, 1 to 12. Defaults to the current month."
// @Param			year	query	int	false	"Year. Defaults to the current year."
// @Security		BearerAuth
// @Router			/v1/budgets/status [get]
func GetBudgetStatus(c *gin.Context) {
	var query PeriodQuery
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	period, err := query.period(time.Now())
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user := currentUser(c)

	// The budget and the transactions are independent reads
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
		Sort: reconcile.SortPercentageDescending,
	})

	c.JSON(http.StatusOK, newBudgetOverview(report))
}
