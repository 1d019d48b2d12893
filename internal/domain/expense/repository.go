package expense

import (
	"context"

	"github.com/shopspring/decimal"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e Expense) (Expense, error)
	GetByID(ctx context.Context, id string) (Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	// UpdateStatus moves the expense to `to` only while its status is one of `from`.
	UpdateStatus(ctx context.Context, id string, from []Status, to Status) error
	// MarkFlagged flags a still-pending expense. It returns false when the
	// expense was already reviewed.
	MarkFlagged(ctx context.Context, id string, confidence decimal.Decimal) (bool, error)
}
