package employee

import (
	"context"
	"testing"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/employee"
	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{ calls int }

func (p *passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	byID map[string]employee.Employee
}

func newFakeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byID: map[string]employee.Employee{}}
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.byID {
		if filter.Status != nil && string(e.Status) != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range f.byID {
		if existing.Email == e.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := f.byID[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(f.byID, id)
	return nil
}

func salary(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newService(repo *fakeEmployeeRepo) *EmployeeServiceImpl {
	svc := NewEmployeeService(&passthroughTx{}, repo).(*EmployeeServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 10, 14, 18, 30, 0, 0, time.UTC) }
	return svc
}

func TestCreateEmployee_Defaults(t *testing.T) {
	svc := newService(newFakeRepo())

	resp, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FullName:   "  Arjun Mehta ",
		Email:      "Arjun.Mehta@Company.com",
		BaseSalary: salary(72000),
	})
	require.NoError(t, err)

	assert.Equal(t, "Arjun Mehta", resp.FullName)
	assert.Equal(t, "arjun.mehta@company.com", resp.Email)
	assert.Equal(t, "Employee", resp.Role)
	assert.Equal(t, "Active", resp.Status)
	assert.Equal(t, "2024-10-14", resp.JoinDate)
}

func TestCreateEmployee_Validation(t *testing.T) {
	svc := newService(newFakeRepo())

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{Email: "not-an-email"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "base_salary")

	_, err = svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FullName: "A", Email: "a@example.com", BaseSalary: salary(-1),
	})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "base_salary")
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	svc := newService(newFakeRepo())
	req := employee.CreateEmployeeRequest{FullName: "A", Email: "a@example.com", BaseSalary: salary(1)}

	_, err := svc.CreateEmployee(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.CreateEmployee(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestUpdateEmployee(t *testing.T) {
	repo := newFakeRepo()
	tx := &passthroughTx{}
	svc := NewEmployeeService(tx, repo)

	created, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FullName: "Priya Sharma", Email: "priya@example.com", Role: "Admin", BaseSalary: salary(88000), JoinDate: strPtr("2022-11-20"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{
		ID: created.ID, FullName: "Priya Sharma", Email: "priya@example.com", BaseSalary: salary(95000), Status: "Inactive",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, "Inactive", updated.Status)
	assert.Equal(t, "Employee", updated.Role)
	assert.Equal(t, "2022-11-20", updated.JoinDate)
	assert.True(t, decimal.NewFromInt(95000).Equal(updated.BaseSalary))

	_, err = svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{
		ID: uuid.NewString(), FullName: "X", Email: "x@example.com", BaseSalary: salary(1),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetAndDeleteEmployee_InvalidID(t *testing.T) {
	svc := newService(newFakeRepo())

	_, err := svc.GetEmployee(context.Background(), "42")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, svc.DeleteEmployee(context.Background(), "42"), employee.ErrEmployeeNotFound)
}

func strPtr(s string) *string { return &s }
