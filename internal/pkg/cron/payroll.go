package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
)

type missingPayrollCounter interface {
	CountMissing(ctx context.Context, monthYear time.Time) (int, error)
}

// PayrollJobs reminds finance to process the month's payroll
type PayrollJobs struct {
	payroll     missingPayrollCounter
	alerts      alertRaiser
	reminderDay int
	interval    time.Duration
	now         func() time.Time
}

func NewPayrollJobs(payroll missingPayrollCounter, alerts alertRaiser, reminderDay int, interval time.Duration) *PayrollJobs {
	return &PayrollJobs{
		payroll:     payroll,
		alerts:      alerts,
		reminderDay: reminderDay,
		interval:    interval,
		now:         time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("payroll_reminder", j.interval, j.RemindPayrollDue)
}

// RemindPayrollDue raises one Low alert per month once the reminder day is
// reached and some active employee still has no payroll record.
func (j *PayrollJobs) RemindPayrollDue(ctx context.Context) error {
	now := j.now().UTC()
	if now.Day() < j.reminderDay {
		return nil
	}
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	missing, err := j.payroll.CountMissing(ctx, month)
	if err != nil {
		return fmt.Errorf("failed to count missing payroll: %w", err)
	}
	if missing == 0 {
		return nil
	}

	ref := "payroll_due:" + month.Format("2006-01")
	_, created, err := j.alerts.Raise(ctx, alert.RaiseAlertRequest{
		Type:      alert.TypePayrollAction,
		Severity:  alert.SeverityLow,
		Message:   fmt.Sprintf("Payroll processing due for %s.", month.Month()),
		Reference: &ref,
	})
	if err != nil {
		return fmt.Errorf("failed to raise payroll reminder: %w", err)
	}

	slog.Info("Cron: payroll reminder checked", "month", month.Format("2006-01"), "missing", missing, "raised", created)
	return nil
}
