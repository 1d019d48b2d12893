package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	UpdateStatus(ctx context.Context, id string, status PayrollStatus, paymentDate *time.Time) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, monthYear time.Time) (PayrollSummary, error)
	// CountMissing returns how many active employees have no record for the month.
	CountMissing(ctx context.Context, monthYear time.Time) (int, error)
}
