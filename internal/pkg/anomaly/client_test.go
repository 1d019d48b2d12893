package anomaly

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/config"
	"github.com/ai-finance/finance-backend-go/internal/domain/expense"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func features() expense.Features {
	return expense.Features{Amount: decimal.NewFromInt(25000), CategoryID: 2, DayOfWeek: 6, RoleEncoded: 1}
}

func newClient(url string, timeout time.Duration) *Client {
	return NewClient(config.AIConfig{EngineURL: url + "/", Timeout: timeout})
}

func TestDetect_SendsFeaturesAndParsesVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict/anomaly", r.URL.Path)

		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.EqualValues(t, 25000, got["amount"])
		assert.EqualValues(t, 2, got["category_id"])
		assert.EqualValues(t, 6, got["day_of_week"])
		assert.EqualValues(t, 1, got["role_encoded"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_anomaly": true, "severity_score": -0.0712, "confidence": "0.0712"}`))
	}))
	defer srv.Close()

	v, err := newClient(srv.URL, time.Second).Detect(context.Background(), features())
	require.NoError(t, err)
	assert.True(t, v.IsAnomaly)
	assert.True(t, decimal.RequireFromString("0.0712").Equal(v.Confidence))
	assert.True(t, decimal.RequireFromString("-0.0712").Equal(v.SeverityScore))
}

func TestDetect_NumericConfidence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"is_anomaly": false, "severity_score": 0.2, "confidence": 0.2}`))
	}))
	defer srv.Close()

	v, err := newClient(srv.URL, time.Second).Detect(context.Background(), features())
	require.NoError(t, err)
	assert.False(t, v.IsAnomaly)
	assert.True(t, decimal.RequireFromString("0.2").Equal(v.Confidence))
}

func TestDetect_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, time.Second).Detect(context.Background(), features())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestDetect_UntrainedEngine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "message": "Model not trained yet."}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, time.Second).Detect(context.Background(), features())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDetect_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newClient(srv.URL, 50*time.Millisecond).Detect(context.Background(), features())
	assert.Error(t, err)
}

func TestDetect_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, time.Second).Detect(context.Background(), features())
	assert.Error(t, err)
}
