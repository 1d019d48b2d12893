package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/employee"
	"github.com/ai-finance/finance-backend-go/internal/domain/payroll"
	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployees map[string]employee.Employee

func (f fakeEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakePayrollRepo struct {
	records map[string]payroll.PayrollRecord
	filter  payroll.PayrollFilter
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: map[string]payroll.PayrollRecord{}}
}

func (f *fakePayrollRepo) Create(_ context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	for _, r := range f.records {
		if r.EmployeeID == rec.EmployeeID && r.MonthYear.Equal(rec.MonthYear) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}
	rec.ID = uuid.NewString()
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.PayrollRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) List(_ context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	f.filter = filter
	var out []payroll.PayrollRecord
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) UpdateStatus(_ context.Context, id string, status payroll.PayrollStatus, paymentDate *time.Time) error {
	r, ok := f.records[id]
	if !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	r.Status = status
	if paymentDate != nil {
		r.PaymentDate = paymentDate
	}
	f.records[id] = r
	return nil
}

func (f *fakePayrollRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakePayrollRepo) Summary(_ context.Context, month time.Time) (payroll.PayrollSummary, error) {
	s := payroll.PayrollSummary{MonthYear: month}
	for _, r := range f.records {
		if !r.MonthYear.Equal(month) {
			continue
		}
		s.TotalEmployees++
		s.TotalGross = s.TotalGross.Add(r.GrossSalary)
		s.TotalNet = s.TotalNet.Add(r.NetSalary)
		s.TotalTDS = s.TotalTDS.Add(r.TDS)
		s.TotalDeductions = s.TotalDeductions.Add(r.TotalDeductions)
		switch r.Status {
		case payroll.PayrollStatusPending:
			s.PendingCount++
		case payroll.PayrollStatusApproved:
			s.ApprovedCount++
		case payroll.PayrollStatusPaid:
			s.PaidCount++
		}
	}
	return s, nil
}

func (f *fakePayrollRepo) CountMissing(context.Context, time.Time) (int, error) { return 0, nil }

var (
	activeID   = uuid.NewString()
	inactiveID = uuid.NewString()
	noSalaryID = uuid.NewString()
	fixedNow   = time.Date(2024, 10, 31, 17, 45, 0, 0, time.UTC)
)

func newTestService() (*PayrollServiceImpl, *fakePayrollRepo) {
	dept := "Engineering"
	employees := fakeEmployees{
		activeID:   {ID: activeID, FullName: "Yash Agarwal", Department: &dept, BaseSalary: decimal.NewFromInt(1200000), Status: employee.StatusActive},
		inactiveID: {ID: inactiveID, BaseSalary: decimal.NewFromInt(72000), Status: employee.StatusInactive},
		noSalaryID: {ID: noSalaryID, Status: employee.StatusActive},
	}
	repo := newFakePayrollRepo()
	svc := NewPayrollService(passthroughTx{}, repo, employees).(*PayrollServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestCalculate_UsesCurrentMonthByDefault(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.Calculate(context.Background(), payroll.CalculateRequest{
		Employee:     &payroll.CalculateEmployee{ID: "e1", BaseSalary: dec("72000")},
		UnpaidLeaves: dec("2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "5112", res.NetPay.String())

	_, err = svc.Calculate(context.Background(), payroll.CalculateRequest{
		Employee: &payroll.CalculateEmployee{BaseSalary: dec("-1")},
	})
	assert.ErrorIs(t, err, payroll.ErrNegativeBaseSalary)
}

func TestRun(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Run(context.Background(), payroll.RunPayrollRequest{EmployeeID: activeID, MonthYear: "2024-10"})
	require.NoError(t, err)
	assert.Equal(t, "2024-10", resp.MonthYear)
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "100000", resp.GrossSalary.String())
	assert.Equal(t, "8750", resp.TDS.String())
	assert.Equal(t, "89250", resp.NetSalary.String())
	assert.Len(t, repo.records, 1)

	_, err = svc.Run(context.Background(), payroll.RunPayrollRequest{EmployeeID: activeID, MonthYear: "2024-10-15"})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
}

func TestRun_Rejections(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Run(ctx, payroll.RunPayrollRequest{EmployeeID: inactiveID, MonthYear: "2024-10"})
	assert.ErrorIs(t, err, payroll.ErrEmployeeInactive)

	_, err = svc.Run(ctx, payroll.RunPayrollRequest{EmployeeID: noSalaryID, MonthYear: "2024-10"})
	assert.ErrorIs(t, err, payroll.ErrEmployeeHasNoBaseSalary)

	_, err = svc.Run(ctx, payroll.RunPayrollRequest{EmployeeID: uuid.NewString(), MonthYear: "2024-10"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.Run(ctx, payroll.RunPayrollRequest{EmployeeID: activeID, MonthYear: "October", OvertimeHours: dec("-2")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month_year")
	assert.Contains(t, verrs.ToMap(), "overtime_hours")
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Run(ctx, payroll.RunPayrollRequest{EmployeeID: activeID, MonthYear: "2024-10"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, payroll.UpdateStatusRequest{ID: rec.ID, Status: "Paid"})
	assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)

	approved, err := svc.UpdateStatus(ctx, payroll.UpdateStatusRequest{ID: rec.ID, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, "Approved", approved.Status)
	assert.Nil(t, approved.PaymentDate)

	paid, err := svc.UpdateStatus(ctx, payroll.UpdateStatusRequest{ID: rec.ID, Status: "Paid"})
	require.NoError(t, err)
	assert.Equal(t, "Paid", paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "2024-10-31", *paid.PaymentDate)

	_, err = svc.UpdateStatus(ctx, payroll.UpdateStatusRequest{ID: rec.ID, Status: "Pending"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	assert.ErrorIs(t, svc.DeletePayrollRecord(ctx, rec.ID), payroll.ErrCannotDeletePaidRecord)
}

func TestDeletePayrollRecord(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	rec, err := svc.Run(ctx, payroll.RunPayrollRequest{EmployeeID: activeID, MonthYear: "2024-09"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePayrollRecord(ctx, rec.ID))
	assert.Empty(t, repo.records)
	assert.ErrorIs(t, svc.DeletePayrollRecord(ctx, rec.ID), payroll.ErrPayrollRecordNotFound)
	assert.ErrorIs(t, svc.DeletePayrollRecord(ctx, "nope"), payroll.ErrPayrollRecordNotFound)
}

func TestListPayrollRecords_NormalizesPaging(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.ListPayrollRecords(context.Background(), payroll.PayrollFilter{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 100, resp.Limit)
	assert.Equal(t, 100, repo.filter.Limit)
	assert.NotNil(t, resp.Data)
}

func TestGetPayrollSummary(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Run(ctx, payroll.RunPayrollRequest{EmployeeID: activeID, MonthYear: "2024-10"})
	require.NoError(t, err)

	sum, err := svc.GetPayrollSummary(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-10", sum.MonthYear)
	assert.Equal(t, 1, sum.TotalEmployees)
	assert.Equal(t, 1, sum.PendingCount)
	assert.Equal(t, "89250", sum.TotalNet.String())

	_, err = svc.GetPayrollSummary(ctx, "Q4")
	assert.ErrorIs(t, err, payroll.ErrInvalidMonthYear)
}

func TestPayslip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Run(ctx, payroll.RunPayrollRequest{EmployeeID: activeID, MonthYear: "2024-10", OvertimeHours: dec("4")})
	require.NoError(t, err)

	pdf, err := svc.Payslip(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, err = svc.Payslip(ctx, uuid.NewString())
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}
