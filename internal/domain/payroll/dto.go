package payroll

import (
	"time"

	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATE DTOs ==========

type CalculateEmployee struct {
	ID         string           `json:"id"`
	BaseSalary *decimal.Decimal `json:"baseSalary"`
	Department string           `json:"department"`
}

// CalculateRequest is the wire form of PayrollRequest.
type CalculateRequest struct {
	Employee      *CalculateEmployee `json:"employee"`
	OvertimeHours *decimal.Decimal   `json:"overtimeHours,omitempty"`
	UnpaidLeaves  *decimal.Decimal   `json:"unpaidLeaves,omitempty"`
	MonthYear     string             `json:"monthYear,omitempty"`
}

// ToPayrollRequest fills defaults and converts to the calculator input.
// now is used when MonthYear is empty.
func (r CalculateRequest) ToPayrollRequest(now time.Time) (PayrollRequest, error) {
	if r.Employee == nil || r.Employee.BaseSalary == nil {
		return PayrollRequest{}, ErrInvalidEmployeeData
	}

	month := MonthStart(now)
	if r.MonthYear != "" {
		parsed, ok := validator.ParseMonth(r.MonthYear)
		if !ok {
			return PayrollRequest{}, ErrInvalidMonthYear
		}
		month = parsed
	}

	return PayrollRequest{
		Employee: EmployeeInput{
			ID:         r.Employee.ID,
			BaseSalary: *r.Employee.BaseSalary,
			Department: r.Employee.Department,
		},
		OvertimeHours: orZero(r.OvertimeHours),
		UnpaidLeaves:  orZero(r.UnpaidLeaves),
		MonthYear:     month,
	}, nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// ========== PAYROLL RECORD DTOs ==========

type RunPayrollRequest struct {
	EmployeeID    string           `json:"employee_id" validate:"required,uuid"`
	MonthYear     string           `json:"month_year" validate:"required"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	UnpaidLeaves  *decimal.Decimal `json:"unpaid_leaves,omitempty"`
}

func (r *RunPayrollRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if _, ok := validator.ParseMonth(r.MonthYear); !ok {
		errs = append(errs, validator.ValidationError{Field: "month_year", Message: "must be YYYY-MM, YYYY-MM-DD or RFC3339"})
	}
	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}
	if r.UnpaidLeaves != nil && r.UnpaidLeaves.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "unpaid_leaves", Message: "must be non-negative"})
	}
	return errs.OrNil()
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status" validate:"required,oneof=Approved Paid"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r)
}

type PayrollRecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	Department      string          `json:"department,omitempty"`
	MonthYear       string          `json:"month_year"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	UnpaidLeaves    decimal.Decimal `json:"unpaid_leaves"`
	Basic           decimal.Decimal `json:"basic"`
	HRA             decimal.Decimal `json:"hra"`
	Special         decimal.Decimal `json:"special"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	PF              decimal.Decimal `json:"pf"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	TDS             decimal.Decimal `json:"tds"`
	LeaveDeduction  decimal.Decimal `json:"leave_deduction"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	Status          string          `json:"status"`
	PaymentDate     *string         `json:"payment_date,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

type PayrollFilter struct {
	MonthYear  *time.Time `json:"month_year,omitempty"`
	Status     *string    `json:"status,omitempty"`
	EmployeeID *string    `json:"employee_id,omitempty"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PayrollSummaryResponse struct {
	MonthYear       string          `json:"month_year"`
	TotalEmployees  int             `json:"total_employees"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalTDS        decimal.Decimal `json:"total_tds"`
	TotalNet        decimal.Decimal `json:"total_net"`
	PendingCount    int             `json:"pending_count"`
	ApprovedCount   int             `json:"approved_count"`
	PaidCount       int             `json:"paid_count"`
}

func ToRecordResponse(rec PayrollRecord) PayrollRecordResponse {
	resp := PayrollRecordResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		MonthYear:       rec.MonthYear.Format("2006-01"),
		BaseSalary:      rec.BaseSalary,
		OvertimeHours:   rec.OvertimeHours,
		UnpaidLeaves:    rec.UnpaidLeaves,
		Basic:           rec.Basic,
		HRA:             rec.HRA,
		Special:         rec.Special,
		OvertimePay:     rec.OvertimePay,
		GrossSalary:     rec.GrossSalary,
		PF:              rec.PF,
		ProfessionalTax: rec.ProfessionalTax,
		TDS:             rec.TDS,
		LeaveDeduction:  rec.LeaveDeduction,
		TotalDeductions: rec.TotalDeductions,
		NetSalary:       rec.NetSalary,
		Status:          string(rec.Status),
		CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.Department != nil {
		resp.Department = *rec.Department
	}
	if rec.PaymentDate != nil {
		d := rec.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &d
	}
	return resp
}
