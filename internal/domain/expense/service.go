package expense

import "context"

type ExpenseService interface {
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]ExpenseResponse, error)
	GetExpense(ctx context.Context, id string) (ExpenseResponse, error)
	// CreateExpense stores the expense as Pending and schedules an anomaly check.
	CreateExpense(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (ExpenseResponse, error)
}
