package v1

import (
	"time"

	"github.com/credence-finance/backend/internal/categories"
	"github.com/credence-finance/backend/internal/models"
	"github.com/credence-finance/backend/internal/reconcile"
	"github.com/shopspring/decimal"
)

// AllocationEditable is a single category line item of a budget.
// The category can be the internal key or the display name.
type AllocationEditable struct {
	Category string          `json:"category" example:"food"`
	Amount   decimal.Decimal `json:"amount" example:"400"`
}

// BudgetEditable represents all user configurable parameters of a monthly
// budget. Saving it for a month that already has a budget replaces the
// existing one.
type BudgetEditable struct {
	Month       int                  `json:"month" example:"3"`   // Month, 1 to 12
	Year        int                  `json:"year" example:"2024"` // Year, 2000 to 2100
	TotalBudget decimal.Decimal      `json:"totalBudget" example:"2000"`
	Allocations []AllocationEditable `json:"allocations"`
}

func (editable BudgetEditable) model(user models.User) (models.Budget, error) {
	period, err := PeriodQuery{Month: editable.Month, Year: editable.Year}.period(time.Now())
	if err != nil {
		return models.Budget{}, err
	}

	budget := models.Budget{
		UserID:      user.ID,
		Month:       period,
		TotalBudget: editable.TotalBudget,
	}

	for _, allocation := range editable.Allocations {
		budget.Allocations = append(budget.Allocations, models.BudgetAllocation{
			Category: allocation.Category,
			Amount:   allocation.Amount,
		})
	}

	return budget, nil
}

// Allocation is the API representation of a budget allocation. The category
// is the display name.
type Allocation struct {
	Category string          `json:"category" example:"Food & Dining"`
	Amount   decimal.Decimal `json:"amount" example:"400"`
}

// Budget is the API representation of a monthly budget.
type Budget struct {
	models.DefaultModel
	Month       int             `json:"month" example:"3"`
	Year        int             `json:"year" example:"2024"`
	TotalBudget decimal.Decimal `json:"totalBudget" example:"2000"`
	Allocations []Allocation    `json:"allocations"`
	Unallocated decimal.Decimal `json:"unallocated" example:"200"` // Part of the total budget no allocation claims
}

func newBudget(model models.Budget) Budget {
	budget := Budget{
		DefaultModel: model.DefaultModel,
		Month:        int(model.Month.Month()),
		Year:         model.Month.Year(),
		TotalBudget:  model.TotalBudget,
		Allocations:  make([]Allocation, 0, len(model.Allocations)),
		Unallocated:  model.Unallocated(),
	}

	for _, allocation := range model.Allocations {
		budget.Allocations = append(budget.Allocations, Allocation{
			Category: categories.ToDisplayName(allocation.Category),
			Amount:   allocation.Amount,
		})
	}

	return budget
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`  // Data for the budget
	Error *string `json:"error"` // The error, if any occurred
}

// BudgetStatus is the reconciliation result for one category.
type BudgetStatus struct {
	Category   string          `json:"category" example:"Food & Dining"`
	Budget     decimal.Decimal `json:"budget" example:"400"`
	Spent      decimal.Decimal `json:"spent" example:"250"`
	Remaining  decimal.Decimal `json:"remaining" example:"150"`
	Percentage decimal.Decimal `json:"percentage" example:"62.5"`
	Status     string          `json:"status" example:"good"`
}

// BudgetOverview is the spend-vs-budget overview of one month.
type BudgetOverview struct {
	TotalBudget     decimal.Decimal `json:"totalBudget" example:"2000"`
	TotalSpent      decimal.Decimal `json:"totalSpent" example:"1200"`
	TotalRemaining  decimal.Decimal `json:"totalRemaining" example:"800"`
	TotalPercentage decimal.Decimal `json:"totalPercentage" example:"60"`
	Categories      []BudgetStatus  `json:"categories"`
}

func newBudgetOverview(report reconcile.Report) BudgetOverview {
	overview := BudgetOverview{
		TotalBudget:     report.Totals.Budgeted,
		TotalSpent:      report.Totals.Spent,
		TotalRemaining:  report.Totals.Remaining,
		TotalPercentage: report.Totals.PercentageUsed,
		Categories:      make([]BudgetStatus, 0, len(report.Categories)),
	}

	for _, row := range report.Categories {
		overview.Categories = append(overview.Categories, BudgetStatus{
			Category:   row.Category,
			Budget:     row.Budgeted,
			Spent:      row.Spent,
			Remaining:  row.Remaining,
			Percentage: row.PercentageUsed,
			Status:     string(row.Status),
		})
	}

	return overview
}

// reconcileBudget converts a stored budget into the reconciler's input.
func reconcileBudget(model models.Budget) *reconcile.Budget {
	budget := reconcile.Budget{
		TotalBudget: model.TotalBudget,
		Allocations: make([]reconcile.Allocation, 0, len(model.Allocations)),
	}

	for _, allocation := range model.Allocations {
		budget.Allocations = append(budget.Allocations, reconcile.Allocation{
			Category: allocation.Category,
			Amount:   allocation.Amount,
		})
	}

	return &budget
}

// reconcileActivity converts aggregated expense activity into the
// reconciler's input.
func reconcileActivity(activity []models.CategoryActivity) []reconcile.Activity {
	result := make([]reconcile.Activity, 0, len(activity))
	for _, a := range activity {
		result = append(result, reconcile.Activity{
			Category:        a.Category,
			Spent:           a.Spent,
			Transactions:    a.Transactions,
			LastTransaction: a.LastTransaction,
		})
	}

	return result
}
