package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxBracket is one row of the progressive annual tax table. Income above
// LowerBound is taxed at Rate, on top of CumulativeTaxBelow.
type TaxBracket struct {
	LowerBound         decimal.Decimal
	Rate               decimal.Decimal
	CumulativeTaxBelow decimal.Decimal
}

// Policy holds every constant the monthly salary computation depends on.
type Policy struct {
	BasicRatio         decimal.Decimal // share of monthly CTC paid as basic
	HRARatio           decimal.Decimal // share of basic paid as HRA
	WorkingHours       decimal.Decimal // working hours per month
	OvertimeMultiplier decimal.Decimal
	DaysPerMonth       decimal.Decimal // divisor for the per-day leave rate
	PFRate             decimal.Decimal
	PFCeiling          decimal.Decimal
	ProfessionalTax    decimal.Decimal
	TaxBrackets        []TaxBracket // ascending by LowerBound, first row starts at 0
}

// DefaultPolicy returns the policy used by Calculate.
func DefaultPolicy() Policy {
	return Policy{
		BasicRatio:         decimal.RequireFromString("0.40"),
		HRARatio:           decimal.RequireFromString("0.50"),
		WorkingHours:       decimal.NewFromInt(22 * 8),
		OvertimeMultiplier: decimal.NewFromInt(2),
		DaysPerMonth:       decimal.NewFromInt(30),
		PFRate:             decimal.RequireFromString("0.12"),
		PFCeiling:          decimal.NewFromInt(1800),
		ProfessionalTax:    decimal.NewFromInt(200),
		TaxBrackets: []TaxBracket{
			{LowerBound: decimal.Zero, Rate: decimal.Zero, CumulativeTaxBelow: decimal.Zero},
			{LowerBound: decimal.NewFromInt(600000), Rate: decimal.RequireFromString("0.10"), CumulativeTaxBelow: decimal.Zero},
			{LowerBound: decimal.NewFromInt(1000000), Rate: decimal.RequireFromString("0.15"), CumulativeTaxBelow: decimal.NewFromInt(75000)},
			{LowerBound: decimal.NewFromInt(1500000), Rate: decimal.RequireFromString("0.30"), CumulativeTaxBelow: decimal.NewFromInt(150000)},
		},
	}
}

var monthsPerYear = decimal.NewFromInt(12)

// EmployeeInput is the subset of an employee record the calculator needs.
// BaseSalary is annual.
type EmployeeInput struct {
	ID         string
	BaseSalary decimal.Decimal
	Department string
}

// PayrollRequest is a single monthly computation request.
type PayrollRequest struct {
	Employee      EmployeeInput
	OvertimeHours decimal.Decimal
	UnpaidLeaves  decimal.Decimal
	MonthYear     time.Time
}

type Earnings struct {
	Basic    decimal.Decimal `json:"basic"`
	HRA      decimal.Decimal `json:"hra"`
	Special  decimal.Decimal `json:"special"`
	Overtime decimal.Decimal `json:"overtime"`
	Gross    decimal.Decimal `json:"gross"`
}

type Deductions struct {
	PF              decimal.Decimal `json:"pf"`
	ProfessionalTax decimal.Decimal `json:"professionalTax"`
	TDS             decimal.Decimal `json:"tds"`
	Leave           decimal.Decimal `json:"leave"`
	Total           decimal.Decimal `json:"total"`
}

// PayrollResult is the monthly breakdown. All amounts are whole currency units.
type PayrollResult struct {
	Earnings   Earnings        `json:"earnings"`
	Deductions Deductions      `json:"deductions"`
	NetPay     decimal.Decimal `json:"netPay"`
}

// Calculate computes the monthly breakdown using DefaultPolicy.
func Calculate(req PayrollRequest) (PayrollResult, error) {
	return DefaultPolicy().Calculate(req)
}

// Calculate computes the monthly breakdown for req. Amounts are rounded half
// away from zero to whole units after each intermediate step.
func (p Policy) Calculate(req PayrollRequest) (PayrollResult, error) {
	if req.Employee.BaseSalary.IsNegative() {
		return PayrollResult{}, ErrNegativeBaseSalary
	}
	if req.OvertimeHours.IsNegative() {
		return PayrollResult{}, ErrNegativeOvertime
	}
	if req.UnpaidLeaves.IsNegative() {
		return PayrollResult{}, ErrNegativeUnpaidLeaves
	}

	// each rounded amount is one division of an exact numerator, so an exact
	// half stays exact before rounding
	annual := req.Employee.BaseSalary

	basic := annual.Mul(p.BasicRatio).Div(monthsPerYear).Round(0)
	hra := basic.Mul(p.HRARatio).Round(0)

	overtime := annual.Mul(p.OvertimeMultiplier).Mul(req.OvertimeHours).
		Div(monthsPerYear.Mul(p.WorkingHours)).Round(0)

	special := decimal.Max(annual.Sub(basic.Add(hra).Mul(monthsPerYear)).Div(monthsPerYear).Round(0), decimal.Zero)

	gross := basic.Add(hra).Add(special).Add(overtime)

	leave := annual.Mul(req.UnpaidLeaves).Div(monthsPerYear.Mul(p.DaysPerMonth)).Round(0)

	pf := decimal.Min(basic.Mul(p.PFRate).Round(0), p.PFCeiling)

	projectedAnnual := gross.Sub(leave).Mul(monthsPerYear)
	tds := p.AnnualTax(projectedAnnual).Div(monthsPerYear).Round(0)

	total := pf.Add(p.ProfessionalTax).Add(tds).Add(leave)

	return PayrollResult{
		Earnings: Earnings{
			Basic:    basic,
			HRA:      hra,
			Special:  special,
			Overtime: overtime,
			Gross:    gross,
		},
		Deductions: Deductions{
			PF:              pf,
			ProfessionalTax: p.ProfessionalTax,
			TDS:             tds,
			Leave:           leave,
			Total:           total,
		},
		NetPay: gross.Sub(total).Round(0),
	}, nil
}

// AnnualTax applies the highest bracket whose lower bound is strictly below
// income. Income at or below the first bound is untaxed.
func (p Policy) AnnualTax(income decimal.Decimal) decimal.Decimal {
	for i := len(p.TaxBrackets) - 1; i >= 0; i-- {
		b := p.TaxBrackets[i]
		if income.GreaterThan(b.LowerBound) {
			return income.Sub(b.LowerBound).Mul(b.Rate).Add(b.CumulativeTaxBelow)
		}
	}
	return decimal.Zero
}
