package dashboard

import (
	"context"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
	"github.com/ai-finance/finance-backend-go/internal/domain/dashboard"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	recentAlerts   = 3
	cashFlowMonths = 7
)

type alertLister interface {
	List(ctx context.Context, filter alert.AlertFilter) ([]alert.Alert, error)
}

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	alerts alertLister
	now    func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, alerts alertLister) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		alerts:              alerts,
		now:                 time.Now,
	}
}

// GetStats returns the finance dashboard, loading each aggregate in parallel
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (*dashboard.StatsResponse, error) {
	now := s.now().UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	firstMonth := currentMonth.AddDate(0, -(cashFlowMonths - 1), 0)

	var (
		totals  *dashboard.FinancialTotals
		budgets *dashboard.BudgetStats
		outflow []dashboard.MonthlyOutflow
		recent  []alert.Alert
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Payroll, expense and headcount totals
	g.Go(func() error {
		var err error
		totals, err = s.GetFinancialTotals(gCtx)
		return err
	})

	// 2. Budget health for the current month
	g.Go(func() error {
		var err error
		budgets, err = s.GetBudgetStats(gCtx, currentMonth)
		return err
	})

	// 3. Cash flow chart
	g.Go(func() error {
		var err error
		outflow, err = s.GetMonthlyOutflow(gCtx, firstMonth)
		return err
	})

	// 4. Latest alerts
	g.Go(func() error {
		var err error
		recent, err = s.alerts.List(gCtx, alert.AlertFilter{Limit: recentAlerts})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	alerts := make([]alert.AlertResponse, 0, len(recent))
	for _, a := range recent {
		alerts = append(alerts, alert.ToResponse(a))
	}

	return &dashboard.StatsResponse{
		TotalPayroll:    totals.TotalPayroll,
		TotalExpenses:   totals.TotalExpenses,
		BurnRate:        totals.TotalPayroll.Add(totals.TotalExpenses),
		ActiveEmployees: totals.ActiveEmployees,
		HealthScore:     healthScore(budgets),
		Alerts:          alerts,
		CashFlow:        buildCashFlow(outflow, firstMonth, cashFlowMonths),
	}, nil
}

// healthScore is the share of categories within budget, as a whole percentage.
func healthScore(b *dashboard.BudgetStats) int {
	if b == nil || b.Categories == 0 {
		return 100
	}
	return b.WithinBudget * 100 / b.Categories
}

// buildCashFlow returns one point per month starting at first, with zero
// outflow for months that have no rows.
func buildCashFlow(rows []dashboard.MonthlyOutflow, first time.Time, months int) []dashboard.CashFlowPoint {
	byMonth := make(map[string]dashboard.MonthlyOutflow, len(rows))
	for _, r := range rows {
		byMonth[r.Month.Format("2006-01")] = r
	}

	points := make([]dashboard.CashFlowPoint, 0, months)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0)
		row, ok := byMonth[m.Format("2006-01")]
		payroll, expenses := decimal.Zero, decimal.Zero
		if ok {
			payroll, expenses = row.Payroll, row.Expenses
		}
		points = append(points, dashboard.CashFlowPoint{
			Month:    m.Month().String()[:3],
			Payroll:  payroll,
			Expenses: expenses,
			Outflow:  payroll.Add(expenses),
		})
	}
	return points
}
