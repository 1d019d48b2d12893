package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ai-finance/finance-backend-go/internal/domain/expense"
	"github.com/ai-finance/finance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type expenseRepository struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseSelect = `
	SELECT ex.id, ex.user_id, ex.category_id, ex.description, ex.amount, ex.date_incurred, ex.status,
		   ex.receipt_url, ex.ai_flag, ex.ai_confidence, ex.created_at, ex.updated_at,
		   e.full_name, e.role, c.name
	FROM expenses ex
	LEFT JOIN employees e ON ex.user_id = e.id
	LEFT JOIN categories c ON ex.category_id = c.id
`

func scanExpense(row pgx.Row) (expense.Expense, error) {
	var ex expense.Expense
	err := row.Scan(
		&ex.ID, &ex.UserID, &ex.CategoryID, &ex.Description, &ex.Amount, &ex.DateIncurred, &ex.Status,
		&ex.ReceiptURL, &ex.AIFlag, &ex.AIConfidence, &ex.CreatedAt, &ex.UpdatedAt,
		&ex.EmployeeName, &ex.EmployeeRole, &ex.CategoryName,
	)
	return ex, err
}

func (r *expenseRepository) Create(ctx context.Context, ex expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	if ex.ID == "" {
		ex.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO expenses (id, user_id, category_id, description, amount, date_incurred, status, receipt_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query,
		ex.ID, ex.UserID, ex.CategoryID, ex.Description, ex.Amount, ex.DateIncurred, ex.Status, ex.ReceiptURL,
	)
	if err != nil {
		switch {
		case isConstraintViolation(err, pgForeignKeyViolation, "expenses_user_id_fkey"):
			return expense.Expense{}, expense.ErrUnknownEmployee
		case isConstraintViolation(err, pgForeignKeyViolation, "expenses_category_id_fkey"):
			return expense.Expense{}, expense.ErrUnknownCategory
		}
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}

	return r.GetByID(ctx, ex.ID)
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	ex, err := scanExpense(q.QueryRow(ctx, expenseSelect+" WHERE ex.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}
	return ex, nil
}

func (r *expenseRepository) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := expenseSelect + " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND ex.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND ex.category_id = $%d", argIdx)
		args = append(args, *filter.CategoryID)
		argIdx++
	}
	if filter.UserID != nil {
		query += fmt.Sprintf(" AND ex.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	query += " ORDER BY ex.date_incurred DESC, ex.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []expense.Expense{}
	for rows.Next() {
		ex, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, ex)
	}
	return expenses, rows.Err()
}

func (r *expenseRepository) UpdateStatus(ctx context.Context, id string, from []expense.Status, to expense.Status) error {
	q := GetQuerier(ctx, r.db)

	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = string(s)
	}

	tag, err := q.Exec(ctx, `
		UPDATE expenses SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`, id, to, fromStrings)
	if err != nil {
		return fmt.Errorf("failed to update expense status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return expense.ErrInvalidStatusTransition
	}
	return nil
}

func (r *expenseRepository) MarkFlagged(ctx context.Context, id string, confidence decimal.Decimal) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE expenses SET status = 'Flagged', ai_flag = TRUE, ai_confidence = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'Pending'
	`, id, confidence)
	if err != nil {
		return false, fmt.Errorf("failed to flag expense: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
