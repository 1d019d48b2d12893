package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ai-finance/finance-backend-go/internal/domain/export"
	"github.com/ai-finance/finance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExportHandler interface {
	ExportTable(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	exportService export.Service
}

func NewExportHandler(exportService export.Service) ExportHandler {
	return &exportHandlerImpl{exportService: exportService}
}

// ExportTable handles GET /exports/{table}?format=md|csv|xlsx
func (h *exportHandlerImpl) ExportTable(w http.ResponseWriter, r *http.Request) {
	table, err := export.ParseTable(chi.URLParam(r, "table"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.exportService.Export(r.Context(), table, format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
