package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/handler/http/response"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	db      pinger
	version string
}

func NewHealthHandler(db pinger, version string) HealthHandler {
	return &healthHandlerImpl{db: db, version: version}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
	Time     string `json:"time"`
}

// Health handles GET /health
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	result := healthResponse{
		Status:   "ok",
		Database: "up",
		Version:  h.version,
		Time:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.db.Ping(ctx); err != nil {
		result.Status = "degraded"
		result.Database = "down"
	}

	response.Success(w, result)
}
