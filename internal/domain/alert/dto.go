package alert

import (
	"time"

	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
)

type RaiseAlertRequest struct {
	Type      Type     `json:"type" validate:"required"`
	Message   string   `json:"message" validate:"required"`
	Severity  Severity `json:"severity" validate:"required,oneof=Low Medium High"`
	Reference *string  `json:"reference,omitempty"`
}

func (r *RaiseAlertRequest) Validate() error {
	return validator.Struct(r)
}

type AlertFilter struct {
	UnresolvedOnly bool
	Limit          int
}

type AlertResponse struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Message    string  `json:"message"`
	Severity   string  `json:"severity"`
	Reference  *string `json:"reference,omitempty"`
	IsResolved bool    `json:"is_resolved"`
	CreatedAt  string  `json:"created_at"`
}

func ToResponse(a Alert) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		Type:       string(a.Type),
		Message:    a.Message,
		Severity:   string(a.Severity),
		Reference:  a.Reference,
		IsResolved: a.IsResolved,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}
