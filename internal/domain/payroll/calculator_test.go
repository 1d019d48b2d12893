package payroll

import (
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func request(base, overtime, leaves string) PayrollRequest {
	return PayrollRequest{
		Employee:      EmployeeInput{ID: "emp-1", BaseSalary: d(base), Department: "Engineering"},
		OvertimeHours: d(overtime),
		UnpaidLeaves:  d(leaves),
		MonthYear:     time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
	}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestCalculate_Scenarios(t *testing.T) {
	tests := []struct {
		name                              string
		base, overtime, leaves            string
		basic, hra, special, ot, gross    string
		pf, pt, tds, leave, total, netPay string
	}{
		{
			name: "entry level, no overtime or leave",
			base: "72000", overtime: "0", leaves: "0",
			basic: "2400", hra: "1200", special: "2400", ot: "0", gross: "6000",
			pf: "288", pt: "200", tds: "0", leave: "0", total: "488", netPay: "5512",
		},
		{
			name: "entry level, two unpaid leaves",
			base: "72000", overtime: "0", leaves: "2",
			basic: "2400", hra: "1200", special: "2400", ot: "0", gross: "6000",
			pf: "288", pt: "200", tds: "0", leave: "400", total: "888", netPay: "5112",
		},
		{
			name: "third bracket with capped PF",
			base: "1200000", overtime: "0", leaves: "0",
			basic: "40000", hra: "20000", special: "40000", ot: "0", gross: "100000",
			pf: "1800", pt: "200", tds: "8750", leave: "0", total: "10750", netPay: "89250",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(request(tt.base, tt.overtime, tt.leaves))
			require.NoError(t, err)

			assertAmount(t, tt.basic, res.Earnings.Basic, "basic")
			assertAmount(t, tt.hra, res.Earnings.HRA, "hra")
			assertAmount(t, tt.special, res.Earnings.Special, "special")
			assertAmount(t, tt.ot, res.Earnings.Overtime, "overtime")
			assertAmount(t, tt.gross, res.Earnings.Gross, "gross")
			assertAmount(t, tt.pf, res.Deductions.PF, "pf")
			assertAmount(t, tt.pt, res.Deductions.ProfessionalTax, "professionalTax")
			assertAmount(t, tt.tds, res.Deductions.TDS, "tds")
			assertAmount(t, tt.leave, res.Deductions.Leave, "leave")
			assertAmount(t, tt.total, res.Deductions.Total, "total")
			assertAmount(t, tt.netPay, res.NetPay, "netPay")
		})
	}
}

func TestCalculate_Overtime(t *testing.T) {
	// 6000 / 176 * 2 * 10 = 681.81...
	res, err := Calculate(request("72000", "10", "0"))
	require.NoError(t, err)

	assertAmount(t, "682", res.Earnings.Overtime, "overtime")
	assertAmount(t, "6682", res.Earnings.Gross, "gross")
	assertAmount(t, "6194", res.NetPay, "netPay")
}

func TestCalculate_RoundsHalfAwayFromZero(t *testing.T) {
	// monthly CTC 1001.25: basic 400.5 -> 401, hra 200.5 -> 201
	res, err := Calculate(request("12015", "0", "0"))
	require.NoError(t, err)

	assertAmount(t, "401", res.Earnings.Basic, "basic")
	assertAmount(t, "201", res.Earnings.HRA, "hra")
	assertAmount(t, "399", res.Earnings.Special, "special")
	assertAmount(t, "48", res.Deductions.PF, "pf")
}

func TestCalculate_Invariants(t *testing.T) {
	bases := []string{"0", "1", "12015", "72000", "480000", "600000", "900000", "1200000", "1800000", "3600000", "9999999.99"}
	overtimes := []string{"0", "0.5", "7", "40"}
	leaves := []string{"0", "1", "2.5", "10"}

	for _, base := range bases {
		for _, ot := range overtimes {
			for _, lv := range leaves {
				name := fmt.Sprintf("%s/%s/%s", base, ot, lv)
				res, err := Calculate(request(base, ot, lv))
				require.NoError(t, err, name)

				e, ded := res.Earnings, res.Deductions
				gross := e.Basic.Add(e.HRA).Add(e.Special).Add(e.Overtime)
				assert.Truef(t, gross.Equal(e.Gross), "%s: gross identity", name)

				total := ded.PF.Add(ded.ProfessionalTax).Add(ded.TDS).Add(ded.Leave)
				assert.Truef(t, total.Equal(ded.Total), "%s: deductions identity", name)
				assert.Truef(t, e.Gross.Sub(ded.Total).Equal(res.NetPay), "%s: net identity", name)

				assert.Truef(t, ded.PF.LessThanOrEqual(d("1800")), "%s: pf ceiling", name)
				assert.Falsef(t, e.Special.IsNegative(), "%s: special non-negative", name)

				for field, v := range map[string]decimal.Decimal{
					"basic": e.Basic, "hra": e.HRA, "special": e.Special, "overtime": e.Overtime,
					"tds": ded.TDS, "leave": ded.Leave, "net": res.NetPay,
				} {
					assert.Truef(t, v.Equal(v.Round(0)), "%s: %s is not a whole amount: %s", name, field, v)
				}
			}
		}
	}
}

func TestCalculate_ExactHalvesRoundUp(t *testing.T) {
	tests := []struct {
		name                   string
		base, overtime, leaves string
		wantOvertime           string
		wantLeave              string
	}{
		// 100100 * 2 * 12 / 2112 = 1137.5
		{name: "overtime 1137.5", base: "100100", overtime: "12", leaves: "0", wantOvertime: "1138", wantLeave: "0"},
		// 100034 * 2 * 24 / 2112 = 2273.5
		{name: "overtime 2273.5", base: "100034", overtime: "24", leaves: "0", wantOvertime: "2274", wantLeave: "0"},
		// 100020 * 3 / 360 = 833.5
		{name: "leave 833.5", base: "100020", overtime: "0", leaves: "3", wantOvertime: "0", wantLeave: "834"},
		// 100002 * 30 / 360 = 8333.5
		{name: "leave 8333.5", base: "100002", overtime: "0", leaves: "30", wantOvertime: "0", wantLeave: "8334"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(request(tt.base, tt.overtime, tt.leaves))
			require.NoError(t, err)
			assertAmount(t, tt.wantOvertime, res.Earnings.Overtime, "overtime")
			assertAmount(t, tt.wantLeave, res.Deductions.Leave, "leave")
		})
	}
}

// roundRat rounds a non-negative rational half away from zero.
func roundRat(num, den int64) decimal.Decimal {
	r := new(big.Int).Mul(big.NewInt(num), big.NewInt(2))
	r.Add(r, big.NewInt(den))
	r.Quo(r, new(big.Int).Mul(big.NewInt(den), big.NewInt(2)))
	return decimal.NewFromBigInt(r, 0)
}

func TestCalculate_MatchesExactRounding(t *testing.T) {
	for base := int64(100000); base < 100400; base++ {
		for _, hours := range []int64{1, 3, 12, 24} {
			res, err := Calculate(request(fmt.Sprint(base), fmt.Sprint(hours), fmt.Sprint(hours)))
			require.NoError(t, err)

			want := roundRat(base*2*hours, 12*176)
			assert.Truef(t, want.Equal(res.Earnings.Overtime), "base %d, %d hours: overtime want %s, got %s", base, hours, want, res.Earnings.Overtime)

			want = roundRat(base*hours, 12*30)
			assert.Truef(t, want.Equal(res.Deductions.Leave), "base %d, %d leaves: leave want %s, got %s", base, hours, want, res.Deductions.Leave)

			want = roundRat(base*4, 12*10)
			assert.Truef(t, want.Equal(res.Earnings.Basic), "base %d: basic want %s, got %s", base, want, res.Earnings.Basic)
		}
	}
}

func TestRunPayrollRequest_MonthFormats(t *testing.T) {
	for _, month := range []string{"2024-10", "2024-10-15", "2024-10-15T09:30:00Z"} {
		req := RunPayrollRequest{EmployeeID: "8f0e1c2a-5b7d-4e3f-9a1b-2c3d4e5f6a7b", MonthYear: month}
		assert.NoError(t, req.Validate(), month)
	}

	req := RunPayrollRequest{EmployeeID: "8f0e1c2a-5b7d-4e3f-9a1b-2c3d4e5f6a7b", MonthYear: "October"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Equal(t, "must be YYYY-MM, YYYY-MM-DD or RFC3339", verrs.ToMap()["month_year"])
	assert.Contains(t, ErrInvalidMonthYear.Error(), "RFC3339")
}

func TestCalculate_ZeroOvertimeAndLeave(t *testing.T) {
	for _, base := range []string{"0", "72000", "1200000", "5000000"} {
		res, err := Calculate(request(base, "0", "0"))
		require.NoError(t, err)
		assert.True(t, res.Earnings.Overtime.IsZero(), base)
		assert.True(t, res.Deductions.Leave.IsZero(), base)
	}
}

func TestCalculate_NoTaxUpToFirstBracket(t *testing.T) {
	// 600000 annual projects exactly onto the first bound
	res, err := Calculate(request("600000", "0", "0"))
	require.NoError(t, err)
	assert.True(t, res.Deductions.TDS.IsZero())

	res, err = Calculate(request("480000", "0", "0"))
	require.NoError(t, err)
	assert.True(t, res.Deductions.TDS.IsZero())
}

func TestCalculate_MonotonicInOvertime(t *testing.T) {
	// each sweep stays clear of the 1,000,000 projected-income boundary
	for _, base := range []string{"72000", "1200000"} {
		prev, err := Calculate(request(base, "0", "0"))
		require.NoError(t, err)

		for h := 1; h <= 100; h++ {
			res, err := Calculate(request(base, fmt.Sprint(h), "0"))
			require.NoError(t, err)
			assert.Truef(t, res.NetPay.GreaterThanOrEqual(prev.NetPay),
				"base %s: net dropped from %s to %s at %d hours", base, prev.NetPay, res.NetPay, h)
			prev = res
		}
	}
}

func TestCalculate_MonotonicInUnpaidLeave(t *testing.T) {
	sweeps := []struct {
		base      string
		maxLeaves int
	}{
		{"72000", 30},
		{"1200000", 4},
	}
	for _, s := range sweeps {
		prev, err := Calculate(request(s.base, "0", "0"))
		require.NoError(t, err)

		for l := 1; l <= s.maxLeaves; l++ {
			res, err := Calculate(request(s.base, "0", fmt.Sprint(l)))
			require.NoError(t, err)
			assert.Truef(t, res.NetPay.LessThanOrEqual(prev.NetPay),
				"base %s: net rose from %s to %s at %d leaves", s.base, prev.NetPay, res.NetPay, l)
			prev = res
		}
	}
}

func TestCalculate_NegativeInputs(t *testing.T) {
	_, err := Calculate(request("-1", "0", "0"))
	assert.ErrorIs(t, err, ErrNegativeBaseSalary)

	_, err = Calculate(request("72000", "-0.5", "0"))
	assert.ErrorIs(t, err, ErrNegativeOvertime)

	_, err = Calculate(request("72000", "0", "-1"))
	assert.ErrorIs(t, err, ErrNegativeUnpaidLeaves)

	assert.True(t, IsCalculationError(err))
	assert.False(t, IsCalculationError(ErrPayrollRecordNotFound))
}

func TestCalculate_SpecialClampsAtZero(t *testing.T) {
	p := DefaultPolicy()
	p.BasicRatio = d("0.80")

	res, err := p.Calculate(request("120000", "0", "0"))
	require.NoError(t, err)

	// basic 8000 + hra 4000 exceed the 10000 monthly CTC
	assertAmount(t, "0", res.Earnings.Special, "special")
	assertAmount(t, "12000", res.Earnings.Gross, "gross")
	assert.True(t, res.Earnings.Gross.Sub(res.Deductions.Total).Equal(res.NetPay))
}

func TestPolicy_AnnualTax(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		income, want string
	}{
		{"0", "0"},
		{"600000", "0"},
		{"600010", "1"},
		{"1000000", "40000"},
		{"1000001", "75000.15"},
		{"1200000", "105000"},
		{"1500000", "150000"},
		{"2000000", "300000"},
	}
	for _, tt := range tests {
		assertAmount(t, tt.want, p.AnnualTax(d(tt.income)), "annual tax on "+tt.income)
	}
}

func TestCalculateRequest_ToPayrollRequest(t *testing.T) {
	now := time.Date(2024, time.November, 17, 9, 0, 0, 0, time.UTC)
	base := d("72000")

	t.Run("defaults", func(t *testing.T) {
		req, err := CalculateRequest{Employee: &CalculateEmployee{ID: "e1", BaseSalary: &base}}.ToPayrollRequest(now)
		require.NoError(t, err)
		assert.True(t, req.OvertimeHours.IsZero())
		assert.True(t, req.UnpaidLeaves.IsZero())
		assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), req.MonthYear)
	})

	t.Run("explicit month", func(t *testing.T) {
		req, err := CalculateRequest{Employee: &CalculateEmployee{BaseSalary: &base}, MonthYear: "2024-02-10"}.ToPayrollRequest(now)
		require.NoError(t, err)
		assert.Equal(t, time.February, req.MonthYear.Month())
	})

	t.Run("missing salary", func(t *testing.T) {
		_, err := CalculateRequest{Employee: &CalculateEmployee{ID: "e1"}}.ToPayrollRequest(now)
		assert.ErrorIs(t, err, ErrInvalidEmployeeData)

		_, err = CalculateRequest{}.ToPayrollRequest(now)
		assert.ErrorIs(t, err, ErrInvalidEmployeeData)
	})

	t.Run("bad month", func(t *testing.T) {
		_, err := CalculateRequest{Employee: &CalculateEmployee{BaseSalary: &base}, MonthYear: "soon"}.ToPayrollRequest(now)
		assert.ErrorIs(t, err, ErrInvalidMonthYear)
	})
}

func TestPayrollStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, PayrollStatusPending.CanTransitionTo(PayrollStatusApproved))
	assert.True(t, PayrollStatusApproved.CanTransitionTo(PayrollStatusPaid))
	assert.False(t, PayrollStatusPending.CanTransitionTo(PayrollStatusPaid))
	assert.False(t, PayrollStatusPaid.CanTransitionTo(PayrollStatusApproved))
	assert.False(t, PayrollStatusApproved.CanTransitionTo(PayrollStatusPending))
}
