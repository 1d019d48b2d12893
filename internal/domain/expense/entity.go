package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	StatusFlagged  Status = "Flagged"
)

// CanTransitionTo reports whether a reviewer may move an expense from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	if next != StatusApproved && next != StatusRejected {
		return false
	}
	return s == StatusPending || s == StatusFlagged
}

type Expense struct {
	ID           string
	UserID       string
	CategoryID   int
	Description  string
	Amount       decimal.Decimal
	DateIncurred time.Time
	Status       Status
	ReceiptURL   *string
	AIFlag       bool
	AIConfidence *decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
	EmployeeRole *string
	CategoryName *string
}
