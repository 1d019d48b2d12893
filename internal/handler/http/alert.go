package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
	"github.com/ai-finance/finance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AlertHandler interface {
	ListAlerts(w http.ResponseWriter, r *http.Request)
	ResolveAlert(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type alertHandlerImpl struct {
	alertService alert.Service
	keepalive    time.Duration
}

func NewAlertHandler(alertService alert.Service) AlertHandler {
	return &alertHandlerImpl{
		alertService: alertService,
		keepalive:    30 * time.Second,
	}
}

// ListAlerts handles GET /alerts?unresolved=true&limit=
func (h *alertHandlerImpl) ListAlerts(w http.ResponseWriter, r *http.Request) {
	filter := alert.AlertFilter{
		UnresolvedOnly: r.URL.Query().Get("unresolved") == "true",
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	result, err := h.alertService.ListAlerts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ResolveAlert handles PATCH /alerts/{id}/resolve
func (h *alertHandlerImpl) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.alertService.Resolve(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Alert resolved", nil)
}

// Stream handles the SSE connection for newly raised alerts
func (h *alertHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.alertService.Subscribe()
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case a, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(a)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: alert\ndata: %s\n\n", data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
