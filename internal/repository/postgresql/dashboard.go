package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/dashboard"
	"github.com/ai-finance/finance-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

// GetFinancialTotals returns payroll, expense and headcount totals in a single query
func (r *dashboardRepository) GetFinancialTotals(ctx context.Context) (*dashboard.FinancialTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COALESCE(SUM(net_salary), 0) FROM payroll WHERE status IN ('Approved', 'Paid')),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE status = 'Approved'),
			(SELECT COUNT(*) FROM employees WHERE status = 'Active')
	`

	var totals dashboard.FinancialTotals
	if err := q.QueryRow(ctx, query).Scan(&totals.TotalPayroll, &totals.TotalExpenses, &totals.ActiveEmployees); err != nil {
		return nil, fmt.Errorf("failed to get financial totals: %w", err)
	}
	return &totals, nil
}

// GetBudgetStats counts categories whose non-rejected spend in the month is within budget
func (r *dashboardRepository) GetBudgetStats(ctx context.Context, monthYear time.Time) (*dashboard.BudgetStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH spend AS (
			SELECT c.id, c.budget_limit, COALESCE(SUM(e.amount), 0) AS spent
			FROM categories c
			LEFT JOIN expenses e ON e.category_id = c.id
				AND e.status <> 'Rejected'
				AND e.date_incurred >= $1
				AND e.date_incurred < ($1::date + INTERVAL '1 month')
			GROUP BY c.id
		)
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE budget_limit <= 0 OR spent <= budget_limit)
		FROM spend
	`

	var stats dashboard.BudgetStats
	if err := q.QueryRow(ctx, query, monthYear).Scan(&stats.Categories, &stats.WithinBudget); err != nil {
		return nil, fmt.Errorf("failed to get budget stats: %w", err)
	}
	return &stats, nil
}

// GetMonthlyOutflow returns payroll (Approved/Paid) and expense (Approved) outflow grouped by month
func (r *dashboardRepository) GetMonthlyOutflow(ctx context.Context, since time.Time) ([]dashboard.MonthlyOutflow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			SELECT month_year AS month, SUM(net_salary) AS total
			FROM payroll
			WHERE status IN ('Approved', 'Paid') AND month_year >= $1
			GROUP BY month_year
		), x AS (
			SELECT date_trunc('month', date_incurred)::date AS month, SUM(amount) AS total
			FROM expenses
			WHERE status = 'Approved' AND date_incurred >= $1
			GROUP BY 1
		)
		SELECT COALESCE(p.month, x.month), COALESCE(p.total, 0), COALESCE(x.total, 0)
		FROM p FULL OUTER JOIN x ON p.month = x.month
		ORDER BY 1 ASC
	`

	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly outflow: %w", err)
	}
	defer rows.Close()

	var outflow []dashboard.MonthlyOutflow
	for rows.Next() {
		var m dashboard.MonthlyOutflow
		if err := rows.Scan(&m.Month, &m.Payroll, &m.Expenses); err != nil {
			return nil, fmt.Errorf("failed to scan monthly outflow: %w", err)
		}
		outflow = append(outflow, m)
	}
	return outflow, rows.Err()
}
