package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending  PayrollStatus = "Pending"
	PayrollStatusApproved PayrollStatus = "Approved"
	PayrollStatusPaid     PayrollStatus = "Paid"
)

// CanTransitionTo reports whether a record in status s may move to next.
func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	switch s {
	case PayrollStatusPending:
		return next == PayrollStatusApproved
	case PayrollStatusApproved:
		return next == PayrollStatusPaid
	}
	return false
}

func (s PayrollStatus) IsValid() bool {
	switch s {
	case PayrollStatusPending, PayrollStatusApproved, PayrollStatusPaid:
		return true
	}
	return false
}

// PayrollRecord - persisted monthly payroll of one employee
type PayrollRecord struct {
	ID              string
	EmployeeID      string
	MonthYear       time.Time // first day of the month
	BaseSalary      decimal.Decimal
	OvertimeHours   decimal.Decimal
	UnpaidLeaves    decimal.Decimal
	Basic           decimal.Decimal
	HRA             decimal.Decimal
	Special         decimal.Decimal
	OvertimePay     decimal.Decimal
	GrossSalary     decimal.Decimal
	PF              decimal.Decimal
	ProfessionalTax decimal.Decimal
	TDS             decimal.Decimal
	LeaveDeduction  decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	Status          PayrollStatus
	PaymentDate     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	Department   *string
}

// ApplyResult copies a calculation result onto the record.
func (r *PayrollRecord) ApplyResult(res PayrollResult) {
	r.Basic = res.Earnings.Basic
	r.HRA = res.Earnings.HRA
	r.Special = res.Earnings.Special
	r.OvertimePay = res.Earnings.Overtime
	r.GrossSalary = res.Earnings.Gross
	r.PF = res.Deductions.PF
	r.ProfessionalTax = res.Deductions.ProfessionalTax
	r.TDS = res.Deductions.TDS
	r.LeaveDeduction = res.Deductions.Leave
	r.TotalDeductions = res.Deductions.Total
	r.NetSalary = res.NetPay
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PayrollSummary - aggregate over one month
type PayrollSummary struct {
	MonthYear       time.Time
	TotalEmployees  int
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalTDS        decimal.Decimal
	TotalNet        decimal.Decimal
	PendingCount    int
	ApprovedCount   int
	PaidCount       int
}
