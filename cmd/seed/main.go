package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/config"
	"github.com/ai-finance/finance-backend-go/internal/fixtures"
	"github.com/ai-finance/finance-backend-go/internal/pkg/database"
	"github.com/ai-finance/finance-backend-go/internal/repository/postgresql"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database seeding completed")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(dsn); err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	categoryRepo := postgresql.NewCategoryRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	alertRepo := postgresql.NewAlertRepository(db)

	now := time.Now().UTC()

	return postgresql.NewTransactor(db).WithinTx(ctx, func(ctx context.Context) error {
		q := postgresql.GetQuerier(ctx, db)
		if _, err := q.Exec(ctx, `TRUNCATE TABLE alerts, payroll, expenses, employees, categories RESTART IDENTITY CASCADE`); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
		slog.Info("cleared existing data")

		// 1. Categories
		categoryIDs := make([]int, 0, 6)
		for _, c := range fixtures.DefaultCategories() {
			created, err := categoryRepo.Create(ctx, c)
			if err != nil {
				return fmt.Errorf("seed category %s: %w", c.Name, err)
			}
			categoryIDs = append(categoryIDs, created.ID)
		}
		slog.Info("seeded categories", "count", len(categoryIDs))

		// 2. Employees
		employees := fixtures.DefaultEmployees()
		for i, e := range employees {
			created, err := employeeRepo.Create(ctx, e)
			if err != nil {
				return fmt.Errorf("seed employee %s: %w", e.Email, err)
			}
			employees[i] = created
		}
		slog.Info("seeded employees", "count", len(employees))

		// 3. Payroll, computed with the real calculator
		records := 0
		for _, e := range employees {
			history, err := fixtures.PayrollHistory(e, now)
			if err != nil {
				return fmt.Errorf("calculate payroll for %s: %w", e.Email, err)
			}
			for _, rec := range history {
				if _, err := payrollRepo.Create(ctx, rec); err != nil {
					return fmt.Errorf("seed payroll for %s: %w", e.Email, err)
				}
				records++
			}
		}
		slog.Info("seeded payroll records", "count", records)

		// 4. Expenses
		expenses := fixtures.DefaultExpenses(employees, categoryIDs, now)
		for _, ex := range expenses {
			if _, err := expenseRepo.Create(ctx, ex); err != nil {
				return fmt.Errorf("seed expense %q: %w", ex.Description, err)
			}
		}
		slog.Info("seeded expenses", "count", len(expenses))

		// 5. Alerts
		alerts := fixtures.DefaultAlerts()
		for _, a := range alerts {
			if _, err := alertRepo.Create(ctx, a); err != nil {
				return fmt.Errorf("seed alert: %w", err)
			}
		}
		slog.Info("seeded alerts", "count", len(alerts))

		return nil
	})
}
