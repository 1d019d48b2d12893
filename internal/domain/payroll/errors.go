package payroll

import "errors"

var (
	ErrNegativeBaseSalary   = errors.New("base salary must not be negative")
	ErrNegativeOvertime     = errors.New("overtime hours must not be negative")
	ErrNegativeUnpaidLeaves = errors.New("unpaid leaves must not be negative")

	ErrInvalidEmployeeData        = errors.New("invalid employee data")
	ErrInvalidMonthYear           = errors.New("invalid month_year, expected YYYY-MM, YYYY-MM-DD or RFC3339")
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this month")
	ErrInvalidStatusTransition    = errors.New("invalid payroll status transition")
	ErrCannotDeletePaidRecord     = errors.New("cannot delete paid payroll record")
	ErrEmployeeInactive           = errors.New("employee is not active")
	ErrEmployeeHasNoBaseSalary    = errors.New("employee has no base salary configured")
)

// IsCalculationError reports whether err is a calculator precondition failure.
func IsCalculationError(err error) bool {
	return errors.Is(err, ErrNegativeBaseSalary) ||
		errors.Is(err, ErrNegativeOvertime) ||
		errors.Is(err, ErrNegativeUnpaidLeaves)
}
