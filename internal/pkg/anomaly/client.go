package anomaly

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/config"
	"github.com/ai-finance/finance-backend-go/internal/domain/expense"
	"github.com/shopspring/decimal"
)

const predictPath = "/predict/anomaly"

// ErrMalformedResponse is returned when the engine answers 2xx without a verdict
var ErrMalformedResponse = errors.New("anomaly engine returned no verdict")

// APIError represents a non-2xx answer from the engine
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anomaly engine error [%d]: %s", e.StatusCode, e.Body)
}

// Client calls the external anomaly detection engine over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.EngineURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type predictRequest struct {
	Amount      float64 `json:"amount"`
	CategoryID  int     `json:"category_id"`
	DayOfWeek   int     `json:"day_of_week"`
	RoleEncoded int     `json:"role_encoded"`
}

// confidence arrives as a string ("0.1234"); decimal accepts both forms
type predictResponse struct {
	IsAnomaly     *bool           `json:"is_anomaly"`
	SeverityScore decimal.Decimal `json:"severity_score"`
	Confidence    decimal.Decimal `json:"confidence"`
	Message       string          `json:"message"`
}

// Detect implements expense.Detector.
func (c *Client) Detect(ctx context.Context, f expense.Features) (expense.Verdict, error) {
	body, err := json.Marshal(predictRequest{
		Amount:      f.Amount.InexactFloat64(),
		CategoryID:  f.CategoryID,
		DayOfWeek:   f.DayOfWeek,
		RoleEncoded: f.RoleEncoded,
	})
	if err != nil {
		return expense.Verdict{}, fmt.Errorf("failed to encode anomaly request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(body))
	if err != nil {
		return expense.Verdict{}, fmt.Errorf("failed to build anomaly request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return expense.Verdict{}, fmt.Errorf("anomaly engine unreachable after %s: %w", time.Since(start).Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return expense.Verdict{}, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return expense.Verdict{}, fmt.Errorf("failed to decode anomaly response: %w", err)
	}
	// an untrained engine answers 200 with {"status":"error"}
	if out.IsAnomaly == nil {
		if out.Message != "" {
			return expense.Verdict{}, fmt.Errorf("%w: %s", ErrMalformedResponse, out.Message)
		}
		return expense.Verdict{}, ErrMalformedResponse
	}

	return expense.Verdict{
		IsAnomaly:     *out.IsAnomaly,
		SeverityScore: out.SeverityScore,
		Confidence:    out.Confidence,
	}, nil
}
