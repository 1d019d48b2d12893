package alert

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
	"github.com/ai-finance/finance-backend-go/internal/pkg/sse"
	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
)

// Topic is the SSE hub topic new alerts are published on
const Topic = "alerts"

const (
	eventName     = "alert"
	notifyTimeout = 30 * time.Second
)

var _ alert.Service = (*AlertServiceImpl)(nil)

type AlertServiceImpl struct {
	repo     alert.Repository
	hub      *sse.Hub
	notifier alert.Notifier

	wg sync.WaitGroup
}

// NewAlertService wires the alert store to the SSE hub. notifier may be nil.
func NewAlertService(repo alert.Repository, hub *sse.Hub, notifier alert.Notifier) *AlertServiceImpl {
	return &AlertServiceImpl{
		repo:     repo,
		hub:      hub,
		notifier: notifier,
	}
}

func (s *AlertServiceImpl) Raise(ctx context.Context, req alert.RaiseAlertRequest) (alert.AlertResponse, bool, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := req.Validate(); err != nil {
		return alert.AlertResponse{}, false, err
	}

	created, err := s.repo.Create(ctx, alert.Alert{
		Type:      req.Type,
		Message:   req.Message,
		Severity:  req.Severity,
		Reference: req.Reference,
	})
	if errors.Is(err, alert.ErrDuplicateAlert) {
		slog.Debug("alert already raised", "reference", *req.Reference)
		return alert.AlertResponse{}, false, nil
	}
	if err != nil {
		return alert.AlertResponse{}, false, err
	}

	resp := alert.ToResponse(created)
	s.hub.Publish(Topic, sse.Event{Event: eventName, Data: resp})

	if created.Severity == alert.SeverityHigh && s.notifier != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := s.notifier.SendAlert(notifyCtx, resp); err != nil {
				slog.Error("failed to send alert email", "alert_id", resp.ID, "error", err)
			}
		}()
	}

	slog.Info("alert raised", "alert_id", resp.ID, "type", resp.Type, "severity", resp.Severity)
	return resp, true, nil
}

func (s *AlertServiceImpl) ListAlerts(ctx context.Context, filter alert.AlertFilter) ([]alert.AlertResponse, error) {
	alerts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]alert.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		resp = append(resp, alert.ToResponse(a))
	}
	return resp, nil
}

func (s *AlertServiceImpl) Resolve(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return alert.ErrAlertNotFound
	}
	return s.repo.Resolve(ctx, id)
}

// Subscribe returns newly raised alerts until the cleanup func is called.
func (s *AlertServiceImpl) Subscribe() (<-chan alert.AlertResponse, func()) {
	events, cleanup := s.hub.Subscribe(Topic)
	out := make(chan alert.AlertResponse, 1)

	go func() {
		defer close(out)
		for ev := range events {
			if a, ok := ev.Data.(alert.AlertResponse); ok {
				select {
				case out <- a:
				default:
					// slow subscriber
				}
			}
		}
	}()

	return out, cleanup
}

// Wait blocks until in-flight notifications have finished.
func (s *AlertServiceImpl) Wait() {
	s.wg.Wait()
}
