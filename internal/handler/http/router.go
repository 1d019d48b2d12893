package http

import (
	"log/slog"
	"os"

	"github.com/ai-finance/finance-backend-go/internal/config"
	"github.com/ai-finance/finance-backend-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// Handlers groups every HTTP handler mounted by NewRouter
type Handlers struct {
	Health    HealthHandler
	Employee  EmployeeHandler
	Category  CategoryHandler
	Expense   ExpenseHandler
	Payroll   PayrollHandler
	Alert     AlertHandler
	Dashboard DashboardHandler
	Export    ExportHandler
}

func NewRouter(cfg *config.Config, limiter *middleware.RateLimiter, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(!cfg.IsDevelopment())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", h.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Handler)
		}

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Post("/", h.Employee.CreateEmployee)
			r.Get("/{id}", h.Employee.GetEmployee)
			r.Put("/{id}", h.Employee.UpdateEmployee)
			r.Delete("/{id}", h.Employee.DeleteEmployee)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Category.ListCategories)
			r.Post("/", h.Category.CreateCategory)
			r.Get("/spend", h.Category.GetSpend)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.Expense.ListExpenses)
			r.Post("/", h.Expense.CreateExpense)
			r.Get("/{id}", h.Expense.GetExpense)
			r.Patch("/{id}/status", h.Expense.UpdateStatus)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Post("/calculate", h.Payroll.Calculate)
			r.Post("/run", h.Payroll.RunPayroll)
			r.Get("/", h.Payroll.ListPayrollRecords)
			r.Get("/summary", h.Payroll.GetPayrollSummary)
			r.Get("/{id}", h.Payroll.GetPayrollRecord)
			r.Patch("/{id}/status", h.Payroll.UpdateStatus)
			r.Delete("/{id}", h.Payroll.DeletePayrollRecord)
			r.Get("/{id}/payslip", h.Payroll.DownloadPayslip)
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", h.Alert.ListAlerts)
			r.Get("/stream", h.Alert.Stream)
			r.Patch("/{id}/resolve", h.Alert.ResolveAlert)
		})

		r.Get("/dashboard/stats", h.Dashboard.GetStats)

		r.Get("/exports/{table}", h.Export.ExportTable)
	})

	return r
}
