package http

import (
	"encoding/json"
	"net/http"

	"github.com/ai-finance/finance-backend-go/internal/domain/category"
	"github.com/ai-finance/finance-backend-go/internal/handler/http/response"
)

type CategoryHandler interface {
	ListCategories(w http.ResponseWriter, r *http.Request)
	CreateCategory(w http.ResponseWriter, r *http.Request)
	GetSpend(w http.ResponseWriter, r *http.Request)
}

type categoryHandlerImpl struct {
	categoryService category.CategoryService
}

func NewCategoryHandler(categoryService category.CategoryService) CategoryHandler {
	return &categoryHandlerImpl{categoryService: categoryService}
}

func (h *categoryHandlerImpl) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.categoryService.ListCategories(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *categoryHandlerImpl) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req category.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.categoryService.CreateCategory(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Category created successfully", result)
}

// GetSpend handles GET /categories/spend?month_year=YYYY-MM, default: current month
func (h *categoryHandlerImpl) GetSpend(w http.ResponseWriter, r *http.Request) {
	result, err := h.categoryService.GetSpend(r.Context(), r.URL.Query().Get("month_year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
