package category

import (
	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	BudgetLimit decimal.Decimal `json:"budget_limit"`
	Description *string         `json:"description,omitempty"`
}

func (r *CreateCategoryRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	var errs validator.ValidationErrors
	if r.BudgetLimit.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "budget_limit", Message: "must be non-negative"})
	}
	return errs.OrNil()
}

type CategoryResponse struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	BudgetLimit decimal.Decimal `json:"budget_limit"`
	Description *string         `json:"description"`
}

type CategorySpendResponse struct {
	CategoryResponse
	Spent        decimal.Decimal `json:"spent"`
	Utilization  decimal.Decimal `json:"utilization"`
	WithinBudget bool            `json:"within_budget"`
}

func ToResponse(c Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		BudgetLimit: c.BudgetLimit,
		Description: c.Description,
	}
}

func ToSpendResponse(s CategorySpend) CategorySpendResponse {
	return CategorySpendResponse{
		CategoryResponse: ToResponse(s.Category),
		Spent:            s.Spent,
		Utilization:      s.Utilization().Round(4),
		WithinBudget:     s.WithinBudget(),
	}
}
