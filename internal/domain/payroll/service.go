package payroll

import "context"

type PayrollService interface {
	// Calculate runs the calculator without persisting anything
	Calculate(ctx context.Context, req CalculateRequest) (PayrollResult, error)

	// Run calculates and stores the month's payroll for one employee
	Run(ctx context.Context, req RunPayrollRequest) (PayrollRecordResponse, error)

	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (PayrollRecordResponse, error)
	DeletePayrollRecord(ctx context.Context, id string) error
	GetPayrollSummary(ctx context.Context, monthYear string) (PayrollSummaryResponse, error)

	// Payslip renders a PDF payslip for the record
	Payslip(ctx context.Context, id string) ([]byte, error)
}
