package export

import "context"

type Repository interface {
	Employees(ctx context.Context) ([]EmployeeRow, error)
	Categories(ctx context.Context) ([]CategoryRow, error)
	Expenses(ctx context.Context) ([]ExpenseRow, error)
	Payroll(ctx context.Context) ([]PayrollRow, error)
	Alerts(ctx context.Context) ([]AlertRow, error)
}
