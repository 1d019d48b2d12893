package category

import "github.com/shopspring/decimal"

type Category struct {
	ID          int
	Name        string
	BudgetLimit decimal.Decimal
	Description *string
}

// CategorySpend is the approved and pending spend of one category in a month.
type CategorySpend struct {
	Category
	Spent decimal.Decimal
}

// Utilization returns Spent/BudgetLimit, or zero when there is no budget.
func (s CategorySpend) Utilization() decimal.Decimal {
	if !s.BudgetLimit.IsPositive() {
		return decimal.Zero
	}
	return s.Spent.Div(s.BudgetLimit)
}

func (s CategorySpend) WithinBudget() bool {
	if !s.BudgetLimit.IsPositive() {
		return true
	}
	return s.Spent.LessThanOrEqual(s.BudgetLimit)
}
