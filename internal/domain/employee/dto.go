package employee

import (
	"time"

	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName      string           `json:"full_name" validate:"required"`
	Email         string           `json:"email" validate:"required,email"`
	Role          string           `json:"role" validate:"omitempty,oneof=Employee Manager Admin"`
	Department    *string          `json:"department,omitempty"`
	BaseSalary    *decimal.Decimal `json:"base_salary" validate:"required"`
	JoinDate      *string          `json:"join_date,omitempty"`
	BankAccountNo *string          `json:"bank_account_no,omitempty"`
	BankIFSC      *string          `json:"bank_ifsc,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return validateCommon(r.BaseSalary, r.JoinDate)
}

type UpdateEmployeeRequest struct {
	ID            string           `json:"-"`
	FullName      string           `json:"full_name" validate:"required"`
	Email         string           `json:"email" validate:"required,email"`
	Role          string           `json:"role" validate:"omitempty,oneof=Employee Manager Admin"`
	Department    *string          `json:"department,omitempty"`
	BaseSalary    *decimal.Decimal `json:"base_salary" validate:"required"`
	JoinDate      *string          `json:"join_date,omitempty"`
	Status        string           `json:"status" validate:"omitempty,oneof=Active Inactive"`
	BankAccountNo *string          `json:"bank_account_no,omitempty"`
	BankIFSC      *string          `json:"bank_ifsc,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return validateCommon(r.BaseSalary, r.JoinDate)
}

func validateCommon(baseSalary *decimal.Decimal, joinDate *string) error {
	var errs validator.ValidationErrors
	if baseSalary != nil && baseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if joinDate != nil && *joinDate != "" {
		if _, ok := validator.IsValidDate(*joinDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "join_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	return errs.OrNil()
}

type EmployeeFilter struct {
	Status     *string
	Department *string
}

type EmployeeResponse struct {
	ID            string          `json:"id"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	Role          string          `json:"role"`
	Department    *string         `json:"department"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	JoinDate      string          `json:"join_date"`
	Status        string          `json:"status"`
	BankAccountNo *string         `json:"bank_account_no"`
	BankIFSC      *string         `json:"bank_ifsc"`
	CreatedAt     string          `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		FullName:      e.FullName,
		Email:         e.Email,
		Role:          string(e.Role),
		Department:    e.Department,
		BaseSalary:    e.BaseSalary,
		JoinDate:      e.JoinDate.Format("2006-01-02"),
		Status:        string(e.Status),
		BankAccountNo: e.BankAccountNo,
		BankIFSC:      e.BankIFSC,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}
