// Package reconcile computes spend-vs-budget reports for a budgeting period.
//
// A report merges the allocations of a budget with the actual per-category
// spending activity of the same period. Every budgeted category appears even
// without activity, every spending category appears even without an
// allocation, and the absence of a budget is reported as fully unbudgeted
// spending instead of being suppressed.
package reconcile

import (
	"sort"
	"time"

	"github.com/credence-finance/backend/internal/categories"
	"github.com/shopspring/decimal"
)

// Status classifies how much of a category's budget has been used.
type Status string

const (
	StatusGood     Status = "good"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

// The status thresholds are fixed policy, not user-configurable.
var (
	warningThreshold = decimal.NewFromInt(80)
	hundred          = decimal.NewFromInt(100)
)

// SortOrder determines the order of the categories in a report.
type SortOrder uint8

const (
	// SortPercentageDescending sorts categories by descending percentage
	// used. This is the canonical order.
	SortPercentageDescending SortOrder = iota

	// SortCategoryOrder sorts categories by the fixed category table order,
	// with unknown categories after all known ones.
	SortCategoryOrder
)

// Allocation is a single category line item of a budget.
type Allocation struct {
	Category string
	Amount   decimal.Decimal
}

// Budget is the budget side of a reconciliation.
type Budget struct {
	TotalBudget decimal.Decimal
	Allocations []Allocation
}

// Activity is the observed spending for one category in the period.
type Activity struct {
	Category        string
	Spent           decimal.Decimal
	Transactions    uint
	LastTransaction *time.Time
}

// Options control report conventions that differ between consumers.
type Options struct {
	Sort SortOrder

	// ClampRemaining floors the remaining amount of every category at zero,
	// so that overspending never shows as a negative remaining amount.
	ClampRemaining bool

	// SeedCategories are categories that appear in the report even when they
	// have neither an allocation nor any activity.
	SeedCategories []string
}

// Row is the reconciliation result for a single category.
// The category is always the display name.
type Row struct {
	Category        string
	Budgeted        decimal.Decimal
	Spent           decimal.Decimal
	Remaining       decimal.Decimal
	PercentageUsed  decimal.Decimal
	Transactions    uint
	LastTransaction *time.Time
	Status          Status
}

// Totals is the aggregate over the whole report.
type Totals struct {
	Budgeted       decimal.Decimal
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed decimal.Decimal
}

// Report is a complete reconciliation of one period.
type Report struct {
	Categories []Row
	Totals     Totals
}

// Reconcile merges a budget with the spending activity for the same period.
//
// The budget may be nil. In that case every spending category is reported
// against a zero budget and the totals follow the same pattern.
func Reconcile(budget *Budget, activity []Activity, opts Options) Report {
	rows := make([]Row, 0, len(activity))
	index := make(map[string]int)

	row := func(category string) *Row {
		display := categories.ToDisplayName(category)
		if i, ok := index[display]; ok {
			return &rows[i]
		}

		rows = append(rows, Row{Category: display})
		index[display] = len(rows) - 1
		return &rows[len(rows)-1]
	}

	for _, category := range opts.SeedCategories {
		_ = row(category)
	}

	// Initialize one row per allocation so that every budgeted category
	// appears even with zero activity
	if budget != nil {
		for _, allocation := range budget.Allocations {
			r := row(allocation.Category)
			r.Budgeted = r.Budgeted.Add(allocation.Amount)
		}
	}

	for _, a := range activity {
		r := row(a.Category)
		r.Spent = r.Spent.Add(a.Spent)
		r.Transactions += a.Transactions

		if a.LastTransaction != nil && (r.LastTransaction == nil || a.LastTransaction.After(*r.LastTransaction)) {
			t := *a.LastTransaction
			r.LastTransaction = &t
		}
	}

	totalSpent := decimal.Zero
	for i := range rows {
		r := &rows[i]
		totalSpent = totalSpent.Add(r.Spent)

		r.Remaining = r.Budgeted.Sub(r.Spent)
		if opts.ClampRemaining && r.Remaining.IsNegative() {
			r.Remaining = decimal.Zero
		}

		r.PercentageUsed = percentage(r.Spent, r.Budgeted)
		r.Status = classify(r.Spent, r.Budgeted)
	}

	totalBudget := decimal.Zero
	if budget != nil {
		totalBudget = budget.TotalBudget
	}

	report := Report{
		Categories: rows,
		Totals: Totals{
			Budgeted:       totalBudget,
			Spent:          totalSpent,
			Remaining:      totalBudget.Sub(totalSpent),
			PercentageUsed: percentage(totalSpent, totalBudget),
		},
	}

	switch opts.Sort {
	case SortCategoryOrder:
		sort.SliceStable(report.Categories, func(i, j int) bool {
			pi, pj := categories.Position(report.Categories[i].Category), categories.Position(report.Categories[j].Category)
			if pi != pj {
				return pi < pj
			}
			return report.Categories[i].Category < report.Categories[j].Category
		})
	default:
		sort.SliceStable(report.Categories, func(i, j int) bool {
			return report.Categories[i].PercentageUsed.GreaterThan(report.Categories[j].PercentageUsed)
		})
	}

	return report
}

// percentage computes the percentage of the budget that has been spent,
// rounded to two decimal places.
//
// A zero budget saturates to 100 when there is any spending and reports 0
// when there is none. This is report policy: unbudgeted spending counts as
// fully over budget, while an idle category has simply no data.
func percentage(spent, budgeted decimal.Decimal) decimal.Decimal {
	if budgeted.IsPositive() {
		return spent.Mul(hundred).Div(budgeted).Round(2)
	}

	if spent.IsPositive() {
		return hundred
	}

	return decimal.Zero
}

// classify compares spent against budgeted on the exact amounts, not the
// rounded percentage, so that the 80 and 100 boundaries classify exactly.
func classify(spent, budgeted decimal.Decimal) Status {
	if budgeted.IsPositive() {
		if spent.GreaterThanOrEqual(budgeted) {
			return StatusExceeded
		}
		if spent.Mul(hundred).GreaterThanOrEqual(budgeted.Mul(warningThreshold)) {
			return StatusWarning
		}
		return StatusGood
	}

	if spent.IsPositive() {
		return StatusExceeded
	}

	return StatusGood
}
