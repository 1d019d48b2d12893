package dashboard

import (
	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
	"github.com/shopspring/decimal"
)

// StatsResponse is the payload of the main dashboard endpoint
type StatsResponse struct {
	TotalPayroll    decimal.Decimal       `json:"totalPayroll"`
	TotalExpenses   decimal.Decimal       `json:"totalExpenses"`
	BurnRate        decimal.Decimal       `json:"burnRate"`
	ActiveEmployees int                   `json:"activeEmployees"`
	HealthScore     int                   `json:"healthScore"`
	Alerts          []alert.AlertResponse `json:"alerts"`
	CashFlow        []CashFlowPoint       `json:"cashFlow"`
}

// CashFlowPoint is one month of outflow on the cash flow chart
type CashFlowPoint struct {
	Month    string          `json:"month"` // "Jan" .. "Dec"
	Payroll  decimal.Decimal `json:"payroll"`
	Expenses decimal.Decimal `json:"expenses"`
	Outflow  decimal.Decimal `json:"outflow"`
}
