package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
	"github.com/ai-finance/finance-backend-go/internal/domain/category"
	"github.com/ai-finance/finance-backend-go/internal/domain/employee"
	"github.com/ai-finance/finance-backend-go/internal/domain/expense"
	"github.com/ai-finance/finance-backend-go/internal/domain/export"
	"github.com/ai-finance/finance-backend-go/internal/domain/payroll"
	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll calculator errors
	case errors.Is(err, payroll.ErrInvalidEmployeeData):
		BadRequest(w, "Invalid employee data", nil)
	case errors.Is(err, payroll.ErrInvalidMonthYear):
		BadRequest(w, err.Error(), map[string]string{"monthYear": "must be YYYY-MM, YYYY-MM-DD or RFC3339"})
	case errors.Is(err, payroll.ErrNegativeBaseSalary):
		ValidationError(w, map[string]string{"employee.baseSalary": err.Error()})
	case errors.Is(err, payroll.ErrNegativeOvertime):
		ValidationError(w, map[string]string{"overtimeHours": err.Error()})
	case errors.Is(err, payroll.ErrNegativeUnpaidLeaves):
		ValidationError(w, map[string]string{"unpaidLeaves": err.Error()})

	// Payroll record errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this month")
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrCannotDeletePaidRecord):
		Conflict(w, "Cannot delete a paid payroll record")
	case errors.Is(err, payroll.ErrEmployeeInactive):
		ValidationError(w, map[string]string{"employee_id": "employee is not active"})
	case errors.Is(err, payroll.ErrEmployeeHasNoBaseSalary):
		ValidationError(w, map[string]string{"employee_id": "employee has no base salary configured"})

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInUse):
		Conflict(w, "Employee has payroll or expense records")

	// Category domain errors
	case errors.Is(err, category.ErrCategoryNotFound):
		NotFound(w, "Category not found")
	case errors.Is(err, category.ErrCategoryNameExists):
		Conflict(w, "Category name already exists")

	// Expense domain errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, expense.ErrInvalidStatusTransition):
		Conflict(w, "Expense already reviewed")
	case errors.Is(err, expense.ErrUnknownEmployee):
		ValidationError(w, map[string]string{"user_id": "employee does not exist"})
	case errors.Is(err, expense.ErrUnknownCategory):
		ValidationError(w, map[string]string{"category_id": "category does not exist"})

	// Alert domain errors
	case errors.Is(err, alert.ErrAlertNotFound):
		NotFound(w, "Alert not found")
	case errors.Is(err, alert.ErrAlreadyResolved):
		Conflict(w, "Alert already resolved")

	// Export errors
	case errors.Is(err, export.ErrUnknownTable):
		NotFound(w, "Unknown export table")
	case errors.Is(err, export.ErrUnknownFormat):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
