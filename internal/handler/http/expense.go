package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ai-finance/finance-backend-go/internal/domain/expense"
	"github.com/ai-finance/finance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExpenseHandler interface {
	ListExpenses(w http.ResponseWriter, r *http.Request)
	GetExpense(w http.ResponseWriter, r *http.Request)
	CreateExpense(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &expenseHandlerImpl{expenseService: expenseService}
}

// ListExpenses handles GET /expenses?status=&category_id=&user_id=
func (h *expenseHandlerImpl) ListExpenses(w http.ResponseWriter, r *http.Request) {
	var filter expense.ExpenseFilter
	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		filter.Status = &status
	}
	if categoryStr := q.Get("category_id"); categoryStr != "" {
		categoryID, err := strconv.Atoi(categoryStr)
		if err != nil {
			response.BadRequest(w, "category_id must be a number", nil)
			return
		}
		filter.CategoryID = &categoryID
	}
	if userID := q.Get("user_id"); userID != "" {
		filter.UserID = &userID
	}

	result, err := h.expenseService.ListExpenses(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *expenseHandlerImpl) GetExpense(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.GetExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateExpense stores the expense right away; the anomaly check runs in the background
func (h *expenseHandlerImpl) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expense.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.expenseService.CreateExpense(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense submitted successfully", result)
}

// UpdateStatus handles PATCH /expenses/{id}/status
func (h *expenseHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req expense.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.expenseService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense "+result.Status, result)
}
