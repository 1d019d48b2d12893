package alert

import "time"

type Type string

const (
	TypeExpenseAnomaly Type = "Expense Anomaly"
	TypeAnomaly        Type = "Anomaly"
	TypeBudgetOverrun  Type = "Budget_Overrun"
	TypePayrollAction  Type = "Payroll_Action"
)

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

type Alert struct {
	ID         string
	Type       Type
	Message    string
	Severity   Severity
	Reference  *string // dedup key; at most one alert per reference
	IsResolved bool
	CreatedAt  time.Time
}
