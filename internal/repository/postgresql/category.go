package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/category"
	"github.com/ai-finance/finance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type categoryRepository struct {
	db *database.DB
}

func NewCategoryRepository(db *database.DB) category.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]category.Category, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, budget_limit, description FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []category.Category{}
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.BudgetLimit, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) GetByID(ctx context.Context, id int) (category.Category, error) {
	q := GetQuerier(ctx, r.db)

	var c category.Category
	err := q.QueryRow(ctx, `SELECT id, name, budget_limit, description FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.BudgetLimit, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, category.ErrCategoryNotFound
		}
		return category.Category{}, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c category.Category) (category.Category, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO categories (name, budget_limit, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, budget_limit, description
	`

	var created category.Category
	err := q.QueryRow(ctx, query, c.Name, c.BudgetLimit, c.Description).
		Scan(&created.ID, &created.Name, &created.BudgetLimit, &created.Description)
	if err != nil {
		if isConstraintViolation(err, pgUniqueViolation, "uk_categories_name") {
			return category.Category{}, category.ErrCategoryNameExists
		}
		return category.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

func (r *categoryRepository) SpendByMonth(ctx context.Context, monthYear time.Time) ([]category.CategorySpend, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.name, c.budget_limit, c.description, COALESCE(SUM(e.amount), 0)
		FROM categories c
		LEFT JOIN expenses e ON e.category_id = c.id
			AND e.status <> 'Rejected'
			AND e.date_incurred >= $1
			AND e.date_incurred < ($1::date + INTERVAL '1 month')
		GROUP BY c.id
		ORDER BY c.name ASC
	`

	rows, err := q.Query(ctx, query, monthYear)
	if err != nil {
		return nil, fmt.Errorf("failed to get category spend: %w", err)
	}
	defer rows.Close()

	spend := []category.CategorySpend{}
	for rows.Next() {
		var s category.CategorySpend
		if err := rows.Scan(&s.ID, &s.Name, &s.BudgetLimit, &s.Description, &s.Spent); err != nil {
			return nil, fmt.Errorf("failed to scan category spend: %w", err)
		}
		spend = append(spend, s)
	}
	return spend, rows.Err()
}
