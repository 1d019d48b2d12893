package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/config"
	"github.com/ai-finance/finance-backend-go/internal/domain/expense"
	appHTTP "github.com/ai-finance/finance-backend-go/internal/handler/http"
	"github.com/ai-finance/finance-backend-go/internal/handler/http/middleware"
	"github.com/ai-finance/finance-backend-go/internal/pkg/anomaly"
	"github.com/ai-finance/finance-backend-go/internal/pkg/cron"
	"github.com/ai-finance/finance-backend-go/internal/pkg/database"
	"github.com/ai-finance/finance-backend-go/internal/pkg/email"
	"github.com/ai-finance/finance-backend-go/internal/pkg/sse"
	"github.com/ai-finance/finance-backend-go/internal/pkg/storage"
	"github.com/ai-finance/finance-backend-go/internal/repository/postgresql"
	alertService "github.com/ai-finance/finance-backend-go/internal/service/alert"
	categoryService "github.com/ai-finance/finance-backend-go/internal/service/category"
	dashboardService "github.com/ai-finance/finance-backend-go/internal/service/dashboard"
	employeeService "github.com/ai-finance/finance-backend-go/internal/service/employee"
	expenseService "github.com/ai-finance/finance-backend-go/internal/service/expense"
	exportService "github.com/ai-finance/finance-backend-go/internal/service/export"
	payrollService "github.com/ai-finance/finance-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	))

	// money is serialized as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if cfg.App.RunMigrations {
		if err := database.RunMigrations(dsn); err != nil {
			return err
		}
		slog.Info("migrations applied")
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	categoryRepo := postgresql.NewCategoryRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	alertRepo := postgresql.NewAlertRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	exportRepo := postgresql.NewExportRepository(db)

	hub := sse.NewHub()
	mailer, err := email.NewAlertMailer(cfg.SMTP, cfg.App.Name)
	if err != nil {
		return err
	}
	if cfg.SMTP.Host == "" {
		slog.Info("SMTP not configured, alert e-mails disabled")
	}

	var detector expense.Detector
	if cfg.AI.Enabled {
		detector = anomaly.NewClient(cfg.AI)
	} else {
		slog.Info("anomaly detection disabled")
	}

	exportStore, err := storage.NewLocalStorage(cfg.Storage.ExportDir)
	if err != nil {
		return fmt.Errorf("init export storage: %w", err)
	}

	alertSvc := alertService.NewAlertService(alertRepo, hub, mailer)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo)
	categorySvc := categoryService.NewCategoryService(categoryRepo)
	expenseSvc := expenseService.NewExpenseService(expenseRepo, detector, alertSvc, expenseService.Config{
		WorkerCount: cfg.AI.WorkerCount,
		QueueSize:   cfg.AI.QueueSize,
		Timeout:     cfg.AI.Timeout,
	})
	payrollSvc := payrollService.NewPayrollService(tx, payrollRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, alertRepo)
	exportSvc := exportService.NewExportService(exportRepo, exportStore)

	scheduler := cron.NewScheduler()
	cron.NewBudgetJobs(categoryRepo, alertSvc, cfg.Jobs.BudgetWarningRatio, cfg.Jobs.BudgetWatchInterval).RegisterJobs(scheduler)
	cron.NewPayrollJobs(payrollRepo, alertSvc, cfg.Jobs.PayrollReminderDay, cfg.Jobs.PayrollReminderInterval).RegisterJobs(scheduler)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	scheduler.AddJob("rate_limit_cleanup", time.Minute, func(context.Context) error {
		limiter.Cleanup()
		return nil
	})
	scheduler.Start()

	router := appHTTP.NewRouter(cfg, limiter, appHTTP.Handlers{
		Health:    appHTTP.NewHealthHandler(db, cfg.App.Version),
		Employee:  appHTTP.NewEmployeeHandler(employeeSvc),
		Category:  appHTTP.NewCategoryHandler(categorySvc),
		Expense:   appHTTP.NewExpenseHandler(expenseSvc),
		Payroll:   appHTTP.NewPayrollHandler(payrollSvc),
		Alert:     appHTTP.NewAlertHandler(alertSvc),
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
		Export:    appHTTP.NewExportHandler(exportSvc),
	})

	// request contexts derive from baseCtx so shutdown also ends open SSE streams
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", srv.Addr, "version", cfg.App.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
	scheduler.Stop()
	expenseSvc.Stop()
	alertSvc.Wait()

	slog.Info("server exited gracefully")
	return nil
}
