// Package narrative turns reconciliation data into prose via an LLM.
//
// The programmatic analysis is done locally, the prose generation is an
// opaque, potentially slow, potentially failing remote call. Its output is
// passed through to callers unmodified and is never replaced with fabricated
// content on failure.
package narrative

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AnalysisInput is the financial data of one user for one period, keyed by
// display category.
type AnalysisInput struct {
	Income   decimal.Decimal            `json:"income"`
	Expenses map[string]decimal.Decimal `json:"expenses"`
	Budget   map[string]decimal.Decimal `json:"budget"`
}

// CategoryAnalysis compares one category's spending to its budget.
// A positive difference means over budget.
type CategoryAnalysis struct {
	Category   string          `json:"category"`
	Spent      decimal.Decimal `json:"spent"`
	Budget     decimal.Decimal `json:"budget"`
	Difference decimal.Decimal `json:"difference"`
	Status     string          `json:"status" example:"over"`
}

// Analysis is the programmatic budget-vs-expense analysis handed to the
// report generator.
type Analysis struct {
	Income      decimal.Decimal    `json:"income"`
	TotalSpent  decimal.Decimal    `json:"total_spent"`
	TotalBudget decimal.Decimal    `json:"total_budget"`
	Status      string             `json:"status" example:"under"`
	Details     []CategoryAnalysis `json:"details"`
	UserName    string             `json:"userName,omitempty"`
}

// AnalyzeBudgetVsExpenses compares budgeted amounts against actual expenses
// per category and in total. Categories are reported in lexical order so
// the result is deterministic.
func AnalyzeBudgetVsExpenses(input AnalysisInput) Analysis {
	totalSpent := decimal.Zero
	for _, spent := range input.Expenses {
		totalSpent = totalSpent.Add(spent)
	}

	totalBudget := decimal.Zero
	for _, budgeted := range input.Budget {
		totalBudget = totalBudget.Add(budgeted)
	}

	names := make([]string, 0, len(input.Expenses))
	for category := range input.Expenses {
		names = append(names, category)
	}
	sort.Strings(names)

	details := make([]CategoryAnalysis, 0, len(names))
	for _, category := range names {
		spent := input.Expenses[category]
		budgeted := input.Budget[category]
		difference := spent.Sub(budgeted)

		details = append(details, CategoryAnalysis{
			Category:   category,
			Spent:      spent,
			Budget:     budgeted,
			Difference: difference,
			Status:     overUnder(difference),
		})
	}

	return Analysis{
		Income:      input.Income,
		TotalSpent:  totalSpent,
		TotalBudget: totalBudget,
		Status:      overUnder(totalSpent.Sub(totalBudget)),
		Details:     details,
	}
}

func overUnder(difference decimal.Decimal) string {
	if difference.IsPositive() {
		return "over"
	}

	return "under"
}
