package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialTotals combines the headline numbers in a single query
type FinancialTotals struct {
	TotalPayroll    decimal.Decimal // net salary of Approved and Paid records
	TotalExpenses   decimal.Decimal // Approved expenses
	ActiveEmployees int
}

// BudgetStats counts categories against their monthly budget
type BudgetStats struct {
	Categories   int
	WithinBudget int
}

// MonthlyOutflow is the payroll and expense outflow of one month
type MonthlyOutflow struct {
	Month    time.Time
	Payroll  decimal.Decimal
	Expenses decimal.Decimal
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	GetFinancialTotals(ctx context.Context) (*FinancialTotals, error)

	// GetBudgetStats compares each category's spend in the month with its budget
	GetBudgetStats(ctx context.Context, monthYear time.Time) (*BudgetStats, error)

	// GetMonthlyOutflow returns one row per month that has any outflow since `since`
	GetMonthlyOutflow(ctx context.Context, since time.Time) ([]MonthlyOutflow, error)
}
