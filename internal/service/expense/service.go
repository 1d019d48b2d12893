package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
	"github.com/ai-finance/finance-backend-go/internal/domain/expense"
	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type alertRaiser interface {
	Raise(ctx context.Context, req alert.RaiseAlertRequest) (alert.AlertResponse, bool, error)
}

// Config holds anomaly worker configuration
type Config struct {
	WorkerCount int           // default: 2
	QueueSize   int           // default: 256
	Timeout     time.Duration // per detector call, default: 3 seconds
}

type ExpenseServiceImpl struct {
	repo     expense.ExpenseRepository
	detector expense.Detector
	alerts   alertRaiser
	config   Config
	now      func() time.Time

	queue    chan expense.Expense
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once

	// guards stopped; sends to queue happen under the read lock
	mu      sync.RWMutex
	stopped bool
}

// NewExpenseService starts the anomaly workers. A nil detector disables
// anomaly checks and every expense stays Pending until reviewed.
func NewExpenseService(repo expense.ExpenseRepository, detector expense.Detector, alerts alertRaiser, cfg Config) *ExpenseServiceImpl {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	s := &ExpenseServiceImpl{
		repo:     repo,
		detector: detector,
		alerts:   alerts,
		config:   cfg,
		now:      time.Now,
		queue:    make(chan expense.Expense, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	if detector != nil {
		for i := 0; i < cfg.WorkerCount; i++ {
			s.wg.Add(1)
			go s.worker(i)
		}
		slog.Info("anomaly workers started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize, "timeout", cfg.Timeout)
	} else {
		slog.Warn("anomaly detection disabled")
	}

	return s
}

var _ expense.ExpenseService = (*ExpenseServiceImpl)(nil)

func (s *ExpenseServiceImpl) ListExpenses(ctx context.Context, filter expense.ExpenseFilter) ([]expense.ExpenseResponse, error) {
	expenses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, expense.ToResponse(e))
	}
	return resp, nil
}

func (s *ExpenseServiceImpl) GetExpense(ctx context.Context, id string) (expense.ExpenseResponse, error) {
	if !validator.IsValidUUID(id) {
		return expense.ExpenseResponse{}, expense.ErrExpenseNotFound
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return expense.ToResponse(e), nil
}

func (s *ExpenseServiceImpl) CreateExpense(ctx context.Context, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	now := s.now().UTC()
	dateIncurred := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.DateIncurred != nil && *req.DateIncurred != "" {
		dateIncurred, _ = validator.IsValidDate(*req.DateIncurred)
	}

	created, err := s.repo.Create(ctx, expense.Expense{
		UserID:       req.UserID,
		CategoryID:   req.CategoryID,
		Description:  strings.TrimSpace(req.Description),
		Amount:       *req.Amount,
		DateIncurred: dateIncurred,
		Status:       expense.StatusPending,
		ReceiptURL:   req.ReceiptURL,
	})
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	s.enqueue(created)
	return expense.ToResponse(created), nil
}

func (s *ExpenseServiceImpl) UpdateStatus(ctx context.Context, req expense.UpdateStatusRequest) (expense.ExpenseResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return expense.ExpenseResponse{}, expense.ErrExpenseNotFound
	}
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	next := expense.Status(req.Status)
	reviewable := []expense.Status{expense.StatusPending, expense.StatusFlagged}
	if err := s.repo.UpdateStatus(ctx, req.ID, reviewable, next); err != nil {
		return expense.ExpenseResponse{}, err
	}

	return s.GetExpense(ctx, req.ID)
}

func (s *ExpenseServiceImpl) enqueue(e expense.Expense) {
	if s.detector == nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped {
		slog.Warn("anomaly workers stopped, skipping check", "expense_id", e.ID)
		return
	}

	select {
	case s.queue <- e:
	default:
		slog.Warn("anomaly queue full, skipping check", "expense_id", e.ID, "queue_size", s.config.QueueSize)
	}
}

func (s *ExpenseServiceImpl) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case e := <-s.queue:
			s.check(id, e)
		case <-s.stopCh:
			// drain what was accepted before the stop
			for {
				select {
				case e := <-s.queue:
					s.check(id, e)
				default:
					return
				}
			}
		}
	}
}

// check scores one expense. Failures leave the expense unflagged.
func (s *ExpenseServiceImpl) check(workerID int, e expense.Expense) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	role := ""
	if e.EmployeeRole != nil {
		role = *e.EmployeeRole
	}

	verdict, err := s.detector.Detect(ctx, expense.NewFeatures(e, role))
	if err != nil {
		slog.Warn("anomaly check failed, expense left unflagged", "worker", workerID, "expense_id", e.ID, "error", err)
		return
	}
	if !verdict.IsAnomaly {
		slog.Debug("expense passed anomaly check", "expense_id", e.ID)
		return
	}

	confidence := clampConfidence(verdict.Confidence)

	// the detector deadline does not cover the writes
	storeCtx, storeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer storeCancel()

	flagged, err := s.repo.MarkFlagged(storeCtx, e.ID, confidence)
	if err != nil {
		slog.Error("failed to flag expense", "expense_id", e.ID, "error", err)
		return
	}
	if !flagged {
		slog.Info("expense reviewed before anomaly verdict, not flagged", "expense_id", e.ID)
		return
	}

	ref := "expense:" + e.ID
	_, _, err = s.alerts.Raise(storeCtx, alert.RaiseAlertRequest{
		Type:      alert.TypeExpenseAnomaly,
		Severity:  alert.SeverityHigh,
		Message:   fmt.Sprintf("Expense of ₹%s flagged by AI.", e.Amount.String()),
		Reference: &ref,
	})
	if err != nil {
		slog.Error("failed to raise anomaly alert", "expense_id", e.ID, "error", err)
		return
	}

	slog.Info("expense flagged as anomaly", "expense_id", e.ID, "confidence", confidence.String())
}

var one = decimal.NewFromInt(1)

func clampConfidence(c decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(c, decimal.Zero), one).Round(4)
}

// Stop finishes queued checks and stops the workers.
func (s *ExpenseServiceImpl) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		close(s.stopCh)
	})
	s.wg.Wait()
	slog.Info("anomaly workers stopped")
}
