package expense

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Features is the input vector of the anomaly detector.
type Features struct {
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  int             `json:"category_id"`
	DayOfWeek   int             `json:"day_of_week"`  // Monday=0 .. Sunday=6
	RoleEncoded int             `json:"role_encoded"` // Manager=2, everyone else 1
}

// Verdict is the detector's answer for one expense.
type Verdict struct {
	IsAnomaly     bool
	SeverityScore decimal.Decimal
	Confidence    decimal.Decimal
}

// Detector scores a single expense. Implementations must honour ctx deadlines.
type Detector interface {
	Detect(ctx context.Context, f Features) (Verdict, error)
}

func NewFeatures(e Expense, role string) Features {
	return Features{
		Amount:      e.Amount,
		CategoryID:  e.CategoryID,
		DayOfWeek:   MondayIndex(e.DateIncurred.Weekday()),
		RoleEncoded: EncodeRole(role),
	}
}

func MondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func EncodeRole(role string) int {
	if role == "Manager" {
		return 2
	}
	return 1
}
