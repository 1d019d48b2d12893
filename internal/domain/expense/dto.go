package expense

import (
	"time"

	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	UserID       string           `json:"user_id" validate:"required,uuid"`
	CategoryID   int              `json:"category_id" validate:"required,gt=0"`
	Amount       *decimal.Decimal `json:"amount" validate:"required"`
	Description  string           `json:"description" validate:"max=500"`
	DateIncurred *string          `json:"date_incurred,omitempty"`
	ReceiptURL   *string          `json:"receipt_url,omitempty" validate:"omitempty,url"`
}

func (r *CreateExpenseRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than 0"})
	}
	if r.DateIncurred != nil && *r.DateIncurred != "" {
		if _, ok := validator.IsValidDate(*r.DateIncurred); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_incurred", Message: "must be in YYYY-MM-DD format"})
		}
	}
	return errs.OrNil()
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r)
}

type ExpenseFilter struct {
	Status     *string
	CategoryID *int
	UserID     *string
}

type ExpenseResponse struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	EmployeeName *string          `json:"employee_name,omitempty"`
	CategoryID   int              `json:"category_id"`
	CategoryName *string          `json:"category_name,omitempty"`
	Description  string           `json:"description"`
	Amount       decimal.Decimal  `json:"amount"`
	DateIncurred string           `json:"date_incurred"`
	Status       string           `json:"status"`
	ReceiptURL   *string          `json:"receipt_url"`
	AIFlag       bool             `json:"ai_flag"`
	AIConfidence *decimal.Decimal `json:"ai_confidence"`
	CreatedAt    string           `json:"created_at"`
}

func ToResponse(e Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		EmployeeName: e.EmployeeName,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Description:  e.Description,
		Amount:       e.Amount,
		DateIncurred: e.DateIncurred.Format("2006-01-02"),
		Status:       string(e.Status),
		ReceiptURL:   e.ReceiptURL,
		AIFlag:       e.AIFlag,
		AIConfidence: e.AIConfidence,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}
