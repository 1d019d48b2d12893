package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/export"
	"github.com/ai-finance/finance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type exportRepository struct {
	db *database.DB
}

func NewExportRepository(db *database.DB) export.Repository {
	return &exportRepository{db: db}
}

// collect runs query and maps each row with scan.
func collect[T any](ctx context.Context, q database.Querier, query string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		row, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *exportRepository) Employees(ctx context.Context) ([]export.EmployeeRow, error) {
	query := `SELECT id, full_name, email, role, department, base_salary, join_date, status,
		bank_account_no, bank_ifsc, created_at FROM employees ORDER BY created_at`

	rows, err := collect(ctx, GetQuerier(ctx, r.db), query, func(rows pgx.Rows) (export.EmployeeRow, error) {
		var (
			id, name, email, role, status string
			department, bankNo, bankIFSC  *string
			salary                        decimal.Decimal
			joined, created               time.Time
		)
		if err := rows.Scan(&id, &name, &email, &role, &department, &salary, &joined, &status, &bankNo, &bankIFSC, &created); err != nil {
			return export.EmployeeRow{}, err
		}
		return export.EmployeeRow{
			ID: export.Text(id), FullName: export.Text(name), Email: export.Text(email), Role: export.Text(role),
			Department: export.NullText(department), BaseSalary: export.Decimal(salary), JoinDate: export.Date(joined),
			Status: export.Text(status), BankAccountNo: export.NullText(bankNo), BankIFSC: export.NullText(bankIFSC),
			CreatedAt: export.Date(created),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export employees: %w", err)
	}
	return rows, nil
}

func (r *exportRepository) Categories(ctx context.Context) ([]export.CategoryRow, error) {
	query := `SELECT id, name, budget_limit, description FROM categories ORDER BY id`

	rows, err := collect(ctx, GetQuerier(ctx, r.db), query, func(rows pgx.Rows) (export.CategoryRow, error) {
		var (
			id          int
			name        string
			budget      decimal.Decimal
			description *string
		)
		if err := rows.Scan(&id, &name, &budget, &description); err != nil {
			return export.CategoryRow{}, err
		}
		return export.CategoryRow{
			ID: export.Int(id), Name: export.Text(name), BudgetLimit: export.Decimal(budget),
			Description: export.NullText(description),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export categories: %w", err)
	}
	return rows, nil
}

func (r *exportRepository) Expenses(ctx context.Context) ([]export.ExpenseRow, error) {
	query := `SELECT id, user_id, category_id, description, amount, date_incurred, status,
		receipt_url, ai_flag, ai_confidence, created_at FROM expenses ORDER BY date_incurred, created_at`

	rows, err := collect(ctx, GetQuerier(ctx, r.db), query, func(rows pgx.Rows) (export.ExpenseRow, error) {
		var (
			id, userID, description, status string
			categoryID                      int
			amount                          decimal.Decimal
			incurred, created               time.Time
			receipt                         *string
			flag                            bool
			confidence                      *decimal.Decimal
		)
		if err := rows.Scan(&id, &userID, &categoryID, &description, &amount, &incurred, &status,
			&receipt, &flag, &confidence, &created); err != nil {
			return export.ExpenseRow{}, err
		}
		return export.ExpenseRow{
			ID: export.Text(id), UserID: export.Text(userID), CategoryID: export.Int(categoryID),
			Description: export.Text(description), Amount: export.Decimal(amount), DateIncurred: export.Date(incurred),
			Status: export.Text(status), ReceiptURL: export.NullText(receipt), AIFlag: export.Bool(flag),
			AIConfidence: export.NullDecimal(confidence), CreatedAt: export.Date(created),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export expenses: %w", err)
	}
	return rows, nil
}

func (r *exportRepository) Payroll(ctx context.Context) ([]export.PayrollRow, error) {
	query := `SELECT id, employee_id, month_year, basic, hra, special, overtime_pay, gross_salary,
		pf, professional_tax, tds, leave_deduction, total_deductions, net_salary, status, payment_date
		FROM payroll ORDER BY month_year, employee_id`

	rows, err := collect(ctx, GetQuerier(ctx, r.db), query, func(rows pgx.Rows) (export.PayrollRow, error) {
		var (
			id, employeeID, status                         string
			month                                          time.Time
			basic, hra, special, overtime, gross           decimal.Decimal
			pf, pt, tds, leave, totalDeductions, netSalary decimal.Decimal
			paid                                           *time.Time
		)
		if err := rows.Scan(&id, &employeeID, &month, &basic, &hra, &special, &overtime, &gross,
			&pf, &pt, &tds, &leave, &totalDeductions, &netSalary, &status, &paid); err != nil {
			return export.PayrollRow{}, err
		}
		return export.PayrollRow{
			ID: export.Text(id), EmployeeID: export.Text(employeeID), MonthYear: export.Date(month),
			Basic: export.Decimal(basic), HRA: export.Decimal(hra), Special: export.Decimal(special),
			OvertimePay: export.Decimal(overtime), GrossSalary: export.Decimal(gross),
			PF: export.Decimal(pf), ProfessionalTax: export.Decimal(pt), TDS: export.Decimal(tds),
			LeaveDeduction: export.Decimal(leave), TotalDeductions: export.Decimal(totalDeductions),
			NetSalary: export.Decimal(netSalary), Status: export.Text(status), PaymentDate: export.NullDate(paid),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export payroll: %w", err)
	}
	return rows, nil
}

func (r *exportRepository) Alerts(ctx context.Context) ([]export.AlertRow, error) {
	query := `SELECT id, type, message, severity, is_resolved, created_at FROM alerts ORDER BY created_at`

	rows, err := collect(ctx, GetQuerier(ctx, r.db), query, func(rows pgx.Rows) (export.AlertRow, error) {
		var (
			id, typ, message, severity string
			resolved                   bool
			created                    time.Time
		)
		if err := rows.Scan(&id, &typ, &message, &severity, &resolved, &created); err != nil {
			return export.AlertRow{}, err
		}
		return export.AlertRow{
			ID: export.Text(id), Type: export.Text(typ), Message: export.Text(message),
			Severity: export.Text(severity), IsResolved: export.Bool(resolved), CreatedAt: export.Date(created),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export alerts: %w", err)
	}
	return rows, nil
}
