package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
	"github.com/ai-finance/finance-backend-go/internal/domain/category"
	"github.com/shopspring/decimal"
)

type spendReader interface {
	SpendByMonth(ctx context.Context, monthYear time.Time) ([]category.CategorySpend, error)
}

type alertRaiser interface {
	Raise(ctx context.Context, req alert.RaiseAlertRequest) (alert.AlertResponse, bool, error)
}

// BudgetJobs watches category spend against the monthly budget
type BudgetJobs struct {
	categories   spendReader
	alerts       alertRaiser
	warningRatio decimal.Decimal
	interval     time.Duration
	now          func() time.Time
}

func NewBudgetJobs(categories spendReader, alerts alertRaiser, warningRatio decimal.Decimal, interval time.Duration) *BudgetJobs {
	return &BudgetJobs{
		categories:   categories,
		alerts:       alerts,
		warningRatio: warningRatio,
		interval:     interval,
		now:          time.Now,
	}
}

func (j *BudgetJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("budget_watch", j.interval, j.WatchBudgets)
}

// WatchBudgets raises a Medium alert once a category passes the warning ratio
// and a High alert once it passes its limit. Each level fires once per month.
func (j *BudgetJobs) WatchBudgets(ctx context.Context) error {
	now := j.now().UTC()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	spends, err := j.categories.SpendByMonth(ctx, month)
	if err != nil {
		return fmt.Errorf("failed to load category spend: %w", err)
	}

	raised := 0
	for _, s := range spends {
		if !s.BudgetLimit.IsPositive() {
			continue
		}

		utilization := s.Utilization()
		var req alert.RaiseAlertRequest
		switch {
		case utilization.GreaterThanOrEqual(decimal.NewFromInt(1)):
			req = alert.RaiseAlertRequest{
				Type:      alert.TypeBudgetOverrun,
				Severity:  alert.SeverityHigh,
				Message:   fmt.Sprintf("%s budget exceeded: ₹%s spent of ₹%s.", s.Name, s.Spent.StringFixed(2), s.BudgetLimit.StringFixed(2)),
				Reference: budgetReference(s.ID, month, "exceeded"),
			}
		case utilization.GreaterThanOrEqual(j.warningRatio):
			pct := utilization.Mul(decimal.NewFromInt(100)).Floor()
			req = alert.RaiseAlertRequest{
				Type:      alert.TypeBudgetOverrun,
				Severity:  alert.SeverityMedium,
				Message:   fmt.Sprintf("%s budget %s%% utilized.", s.Name, pct.String()),
				Reference: budgetReference(s.ID, month, "warning"),
			}
		default:
			continue
		}

		_, created, err := j.alerts.Raise(ctx, req)
		if err != nil {
			slog.Error("Cron: failed to raise budget alert", "category_id", s.ID, "error", err)
			continue
		}
		if created {
			raised++
		}
	}

	slog.Info("Cron: budget watch completed", "categories", len(spends), "alerts_raised", raised)
	return nil
}

func budgetReference(categoryID int, month time.Time, level string) *string {
	ref := fmt.Sprintf("budget:%d:%s:%s", categoryID, month.Format("2006-01"), level)
	return &ref
}
