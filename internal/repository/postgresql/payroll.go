package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/payroll"
	"github.com/ai-finance/finance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `pr.id, pr.employee_id, pr.month_year, pr.base_salary, pr.overtime_hours, pr.unpaid_leaves,
	pr.basic, pr.hra, pr.special, pr.overtime_pay, pr.gross_salary,
	pr.pf, pr.professional_tax, pr.tds, pr.leave_deduction, pr.total_deductions, pr.net_salary,
	pr.status, pr.payment_date, pr.created_at, pr.updated_at,
	e.full_name, e.department`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.MonthYear, &rec.BaseSalary, &rec.OvertimeHours, &rec.UnpaidLeaves,
		&rec.Basic, &rec.HRA, &rec.Special, &rec.OvertimePay, &rec.GrossSalary,
		&rec.PF, &rec.ProfessionalTax, &rec.TDS, &rec.LeaveDeduction, &rec.TotalDeductions, &rec.NetSalary,
		&rec.Status, &rec.PaymentDate, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.Department,
	)
	return rec, err
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO payroll (
			id, employee_id, month_year, base_salary, overtime_hours, unpaid_leaves,
			basic, hra, special, overtime_pay, gross_salary,
			pf, professional_tax, tds, leave_deduction, total_deductions, net_salary,
			status, payment_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := q.Exec(ctx, query,
		record.ID, record.EmployeeID, payroll.MonthStart(record.MonthYear), record.BaseSalary,
		record.OvertimeHours, record.UnpaidLeaves,
		record.Basic, record.HRA, record.Special, record.OvertimePay, record.GrossSalary,
		record.PF, record.ProfessionalTax, record.TDS, record.LeaveDeduction, record.TotalDeductions, record.NetSalary,
		record.Status, record.PaymentDate,
	)
	if err != nil {
		if isConstraintViolation(err, pgUniqueViolation, "uk_payroll_employee_month") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return r.GetByID(ctx, record.ID)
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payroll pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.MonthYear != nil {
		baseQuery += fmt.Sprintf(" AND pr.month_year = $%d", argIdx)
		args = append(args, payroll.MonthStart(*filter.MonthYear))
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Count query
	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		ORDER BY pr.month_year DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, payrollColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := []payroll.PayrollRecord{}
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, totalCount, nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus, paymentDate *time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll SET status = $2, payment_date = COALESCE($3, payment_date), updated_at = NOW()
		WHERE id = $1
	`, id, status, paymentDate)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

func (r *payrollRepository) Summary(ctx context.Context, monthYear time.Time) (payroll.PayrollSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(gross_salary), 0),
			   COALESCE(SUM(total_deductions), 0),
			   COALESCE(SUM(tds), 0),
			   COALESCE(SUM(net_salary), 0),
			   COUNT(*) FILTER (WHERE status = 'Pending'),
			   COUNT(*) FILTER (WHERE status = 'Approved'),
			   COUNT(*) FILTER (WHERE status = 'Paid')
		FROM payroll
		WHERE month_year = $1
	`

	s := payroll.PayrollSummary{MonthYear: payroll.MonthStart(monthYear)}
	err := q.QueryRow(ctx, query, s.MonthYear).Scan(
		&s.TotalEmployees, &s.TotalGross, &s.TotalDeductions, &s.TotalTDS, &s.TotalNet,
		&s.PendingCount, &s.ApprovedCount, &s.PaidCount,
	)
	if err != nil {
		return payroll.PayrollSummary{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}
	return s, nil
}

func (r *payrollRepository) CountMissing(ctx context.Context, monthYear time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM employees e
		WHERE e.status = 'Active'
		  AND NOT EXISTS (
			SELECT 1 FROM payroll pr WHERE pr.employee_id = e.id AND pr.month_year = $1
		  )
	`

	var missing int
	if err := q.QueryRow(ctx, query, payroll.MonthStart(monthYear)).Scan(&missing); err != nil {
		return 0, fmt.Errorf("failed to count missing payroll: %w", err)
	}
	return missing, nil
}
