package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/employee"
	"github.com/ai-finance/finance-backend-go/internal/domain/payroll"
	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type employeeReader interface {
	GetByID(ctx context.Context, id string) (employee.Employee, error)
}

const maxPageSize = 100

type PayrollServiceImpl struct {
	tx           transactor
	payrollRepo  payroll.PayrollRepository
	employeeRepo employeeReader
	policy       payroll.Policy
	now          func() time.Time
}

func NewPayrollService(tx transactor, payrollRepo payroll.PayrollRepository, employeeRepo employeeReader) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		policy:       payroll.DefaultPolicy(),
		now:          time.Now,
	}
}

// ========== CALCULATOR ==========

func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.PayrollResult, error) {
	pr, err := req.ToPayrollRequest(s.now())
	if err != nil {
		return payroll.PayrollResult{}, err
	}
	return s.policy.Calculate(pr)
}

// ========== PAYROLL RECORDS ==========

func (s *PayrollServiceImpl) Run(ctx context.Context, req payroll.RunPayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	month, _ := validator.ParseMonth(req.MonthYear)

	var created payroll.PayrollRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if !emp.IsActive() {
			return payroll.ErrEmployeeInactive
		}
		if !emp.BaseSalary.IsPositive() {
			return payroll.ErrEmployeeHasNoBaseSalary
		}

		dept := ""
		if emp.Department != nil {
			dept = *emp.Department
		}
		pr := payroll.PayrollRequest{
			Employee:      payroll.EmployeeInput{ID: emp.ID, BaseSalary: emp.BaseSalary, Department: dept},
			OvertimeHours: orZero(req.OvertimeHours),
			UnpaidLeaves:  orZero(req.UnpaidLeaves),
			MonthYear:     month,
		}
		res, err := s.policy.Calculate(pr)
		if err != nil {
			return err
		}

		record := payroll.PayrollRecord{
			EmployeeID:    emp.ID,
			MonthYear:     month,
			BaseSalary:    emp.BaseSalary,
			OvertimeHours: pr.OvertimeHours,
			UnpaidLeaves:  pr.UnpaidLeaves,
			Status:        payroll.PayrollStatusPending,
		}
		record.ApplyResult(res)

		created, err = s.payrollRepo.Create(ctx, record)
		return err
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	slog.Info("payroll processed", "employee_id", created.EmployeeID, "month_year", month.Format("2006-01"), "net_salary", created.NetSalary.String())
	return payroll.ToRecordResponse(created), nil
}

func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.ToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	records, totalCount, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	data := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, payroll.ToRecordResponse(r))
	}

	return payroll.ListPayrollRecordResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateStatus moves a record one step along Pending -> Approved -> Paid.
func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, req payroll.UpdateStatusRequest) (payroll.PayrollRecordResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	next := payroll.PayrollStatus(req.Status)

	var updated payroll.PayrollRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.payrollRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", payroll.ErrInvalidStatusTransition, current.Status, next)
		}

		var paymentDate *time.Time
		if next == payroll.PayrollStatusPaid {
			now := s.now().UTC()
			d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			paymentDate = &d
		}

		if err := s.payrollRepo.UpdateStatus(ctx, req.ID, next, paymentDate); err != nil {
			return err
		}

		updated, err = s.payrollRepo.GetByID(ctx, req.ID)
		return err
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.ToRecordResponse(updated), nil
}

func (s *PayrollServiceImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return payroll.ErrPayrollRecordNotFound
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.payrollRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == payroll.PayrollStatusPaid {
			return payroll.ErrCannotDeletePaidRecord
		}
		return s.payrollRepo.Delete(ctx, id)
	})
}

// ========== SUMMARY ==========

func (s *PayrollServiceImpl) GetPayrollSummary(ctx context.Context, monthYear string) (payroll.PayrollSummaryResponse, error) {
	month := payroll.MonthStart(s.now().UTC())
	if monthYear != "" {
		parsed, ok := validator.ParseMonth(monthYear)
		if !ok {
			return payroll.PayrollSummaryResponse{}, payroll.ErrInvalidMonthYear
		}
		month = parsed
	}

	sum, err := s.payrollRepo.Summary(ctx, month)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	return payroll.PayrollSummaryResponse{
		MonthYear:       sum.MonthYear.Format("2006-01"),
		TotalEmployees:  sum.TotalEmployees,
		TotalGross:      sum.TotalGross,
		TotalDeductions: sum.TotalDeductions,
		TotalTDS:        sum.TotalTDS,
		TotalNet:        sum.TotalNet,
		PendingCount:    sum.PendingCount,
		ApprovedCount:   sum.ApprovedCount,
		PaidCount:       sum.PaidCount,
	}, nil
}

// ========== PAYSLIP ==========

func (s *PayrollServiceImpl) Payslip(ctx context.Context, id string) ([]byte, error) {
	if !validator.IsValidUUID(id) {
		return nil, payroll.ErrPayrollRecordNotFound
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return renderPayslip(record, s.now())
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
