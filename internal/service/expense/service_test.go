package expense

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
	"github.com/ai-finance/finance-backend-go/internal/domain/expense"
	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpenseRepo struct {
	mu       sync.Mutex
	expenses map[string]expense.Expense
}

func newFakeRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: map[string]expense.Expense{}}
}

func (f *fakeExpenseRepo) Create(_ context.Context, e expense.Expense) (expense.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.CategoryID == 99 {
		return expense.Expense{}, expense.ErrUnknownCategory
	}
	e.ID = uuid.NewString()
	role := "Manager"
	e.EmployeeRole = &role
	f.expenses[e.ID] = e
	return e, nil
}

func (f *fakeExpenseRepo) GetByID(_ context.Context, id string) (expense.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.expenses[id]
	if !ok {
		return expense.Expense{}, expense.ErrExpenseNotFound
	}
	return e, nil
}

func (f *fakeExpenseRepo) List(context.Context, expense.ExpenseFilter) ([]expense.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []expense.Expense
	for _, e := range f.expenses {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeExpenseRepo) UpdateStatus(_ context.Context, id string, from []expense.Status, to expense.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.expenses[id]
	if !ok {
		return expense.ErrExpenseNotFound
	}
	for _, s := range from {
		if e.Status == s {
			e.Status = to
			f.expenses[id] = e
			return nil
		}
	}
	return expense.ErrInvalidStatusTransition
}

func (f *fakeExpenseRepo) MarkFlagged(_ context.Context, id string, confidence decimal.Decimal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.expenses[id]
	if !ok || e.Status != expense.StatusPending {
		return false, nil
	}
	e.Status = expense.StatusFlagged
	e.AIFlag = true
	e.AIConfidence = &confidence
	f.expenses[id] = e
	return true, nil
}

type fakeDetector struct {
	mu      sync.Mutex
	verdict expense.Verdict
	err     error
	block   chan struct{}
	seen    []expense.Features
}

func (f *fakeDetector) Detect(ctx context.Context, feat expense.Features) (expense.Verdict, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return expense.Verdict{}, ctx.Err()
		}
	}
	f.mu.Lock()
	f.seen = append(f.seen, feat)
	f.mu.Unlock()
	return f.verdict, f.err
}

type fakeAlerts struct {
	mu     sync.Mutex
	raised []alert.RaiseAlertRequest
}

func (f *fakeAlerts) Raise(_ context.Context, req alert.RaiseAlertRequest) (alert.AlertResponse, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raised = append(f.raised, req)
	return alert.AlertResponse{}, true, nil
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func strPtr(s string) *string { return &s }

func createReq() expense.CreateExpenseRequest {
	return expense.CreateExpenseRequest{
		UserID:       uuid.NewString(),
		CategoryID:   4,
		Amount:       amount("25000"),
		Description:  "  Client visit  ",
		DateIncurred: strPtr("2024-10-13"), // Sunday
	}
}

func TestCreateExpense_FlagsAnomaly(t *testing.T) {
	repo := newFakeRepo()
	det := &fakeDetector{verdict: expense.Verdict{IsAnomaly: true, Confidence: decimal.RequireFromString("0.07124")}}
	alerts := &fakeAlerts{}
	svc := NewExpenseService(repo, det, alerts, Config{WorkerCount: 1})

	resp, err := svc.CreateExpense(context.Background(), createReq())
	require.NoError(t, err)
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "Client visit", resp.Description)
	assert.Equal(t, "2024-10-13", resp.DateIncurred)

	svc.Stop()

	got, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusFlagged, got.Status)
	assert.True(t, got.AIFlag)
	assert.True(t, decimal.RequireFromString("0.0712").Equal(*got.AIConfidence))

	require.Len(t, det.seen, 1)
	assert.Equal(t, 6, det.seen[0].DayOfWeek)
	assert.Equal(t, 2, det.seen[0].RoleEncoded)
	assert.Equal(t, 4, det.seen[0].CategoryID)

	require.Len(t, alerts.raised, 1)
	raised := alerts.raised[0]
	assert.Equal(t, alert.TypeExpenseAnomaly, raised.Type)
	assert.Equal(t, alert.SeverityHigh, raised.Severity)
	assert.Equal(t, "Expense of ₹25000 flagged by AI.", raised.Message)
	assert.Equal(t, "expense:"+resp.ID, *raised.Reference)
}

func TestCreateExpense_NormalVerdictLeavesPending(t *testing.T) {
	repo := newFakeRepo()
	alerts := &fakeAlerts{}
	svc := NewExpenseService(repo, &fakeDetector{}, alerts, Config{})

	resp, err := svc.CreateExpense(context.Background(), createReq())
	require.NoError(t, err)
	svc.Stop()

	got, _ := repo.GetByID(context.Background(), resp.ID)
	assert.Equal(t, expense.StatusPending, got.Status)
	assert.False(t, got.AIFlag)
	assert.Empty(t, alerts.raised)
}

func TestCreateExpense_DetectorFailureFallsBack(t *testing.T) {
	repo := newFakeRepo()
	alerts := &fakeAlerts{}
	svc := NewExpenseService(repo, &fakeDetector{err: errors.New("connection refused")}, alerts, Config{})

	resp, err := svc.CreateExpense(context.Background(), createReq())
	require.NoError(t, err)
	svc.Stop()

	got, _ := repo.GetByID(context.Background(), resp.ID)
	assert.Equal(t, expense.StatusPending, got.Status)
	assert.Empty(t, alerts.raised)
}

func TestCreateExpense_DetectorTimeout(t *testing.T) {
	repo := newFakeRepo()
	det := &fakeDetector{block: make(chan struct{}), verdict: expense.Verdict{IsAnomaly: true}}
	alerts := &fakeAlerts{}
	svc := NewExpenseService(repo, det, alerts, Config{Timeout: 20 * time.Millisecond})

	resp, err := svc.CreateExpense(context.Background(), createReq())
	require.NoError(t, err)
	svc.Stop()

	got, _ := repo.GetByID(context.Background(), resp.ID)
	assert.Equal(t, expense.StatusPending, got.Status)
	assert.Empty(t, alerts.raised)
}

func TestCreateExpense_HumanDecisionWins(t *testing.T) {
	repo := newFakeRepo()
	det := &fakeDetector{block: make(chan struct{}), verdict: expense.Verdict{IsAnomaly: true, Confidence: decimal.RequireFromString("0.9")}}
	alerts := &fakeAlerts{}
	svc := NewExpenseService(repo, det, alerts, Config{WorkerCount: 1, Timeout: 5 * time.Second})

	resp, err := svc.CreateExpense(context.Background(), createReq())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), expense.UpdateStatusRequest{ID: resp.ID, Status: "Approved"})
	require.NoError(t, err)

	close(det.block)
	svc.Stop()

	got, _ := repo.GetByID(context.Background(), resp.ID)
	assert.Equal(t, expense.StatusApproved, got.Status)
	assert.False(t, got.AIFlag)
	assert.Empty(t, alerts.raised)
}

func TestCreateExpense_NoDetector(t *testing.T) {
	repo := newFakeRepo()
	svc := NewExpenseService(repo, nil, &fakeAlerts{}, Config{})
	defer svc.Stop()

	resp, err := svc.CreateExpense(context.Background(), createReq())
	require.NoError(t, err)
	assert.Equal(t, "Pending", resp.Status)
}

func TestCreateExpense_QueueFull(t *testing.T) {
	repo := newFakeRepo()
	det := &fakeDetector{block: make(chan struct{}), verdict: expense.Verdict{IsAnomaly: true}}
	svc := NewExpenseService(repo, det, &fakeAlerts{}, Config{WorkerCount: 1, QueueSize: 1, Timeout: 5 * time.Second})

	for i := 0; i < 5; i++ {
		_, err := svc.CreateExpense(context.Background(), createReq())
		require.NoError(t, err)
	}
	close(det.block)
	svc.Stop()

	det.mu.Lock()
	defer det.mu.Unlock()
	assert.Less(t, len(det.seen), 5)
}

func TestCreateExpense_AfterStopIsNotQueued(t *testing.T) {
	repo := newFakeRepo()
	det := &fakeDetector{verdict: expense.Verdict{IsAnomaly: true}}
	svc := NewExpenseService(repo, det, &fakeAlerts{}, Config{WorkerCount: 1, QueueSize: 8})
	svc.Stop()

	for i := 0; i < 20; i++ {
		resp, err := svc.CreateExpense(context.Background(), createReq())
		require.NoError(t, err)
		assert.Equal(t, "Pending", resp.Status)
	}

	assert.Empty(t, svc.queue)
	det.mu.Lock()
	defer det.mu.Unlock()
	assert.Empty(t, det.seen)
}

func TestCreateExpense_Validation(t *testing.T) {
	svc := NewExpenseService(newFakeRepo(), nil, &fakeAlerts{}, Config{})
	defer svc.Stop()

	_, err := svc.CreateExpense(context.Background(), expense.CreateExpenseRequest{UserID: "x", Amount: amount("10")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "user_id")
	assert.Contains(t, verrs.ToMap(), "category_id")

	req := createReq()
	req.Amount = amount("0")
	_, err = svc.CreateExpense(context.Background(), req)
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "amount")

	req = createReq()
	req.CategoryID = 99
	_, err = svc.CreateExpense(context.Background(), req)
	assert.ErrorIs(t, err, expense.ErrUnknownCategory)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewExpenseService(repo, nil, &fakeAlerts{}, Config{})
	defer svc.Stop()

	resp, err := svc.CreateExpense(context.Background(), createReq())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), expense.UpdateStatusRequest{ID: resp.ID, Status: "Flagged"})
	assert.Error(t, err)

	got, err := svc.UpdateStatus(context.Background(), expense.UpdateStatusRequest{ID: resp.ID, Status: "Rejected"})
	require.NoError(t, err)
	assert.Equal(t, "Rejected", got.Status)

	_, err = svc.UpdateStatus(context.Background(), expense.UpdateStatusRequest{ID: resp.ID, Status: "Approved"})
	assert.ErrorIs(t, err, expense.ErrInvalidStatusTransition)

	_, err = svc.UpdateStatus(context.Background(), expense.UpdateStatusRequest{ID: "bad", Status: "Approved"})
	assert.ErrorIs(t, err, expense.ErrExpenseNotFound)
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, "0", clampConfidence(decimal.RequireFromString("-0.7")).String())
	assert.Equal(t, "1", clampConfidence(decimal.RequireFromString("3.2")).String())
	assert.Equal(t, "0.1235", clampConfidence(decimal.RequireFromString("0.12345")).String())
}
