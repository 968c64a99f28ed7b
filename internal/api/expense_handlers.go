package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sisques-labs/pair-pay/internal/models"
	"github.com/sisques-labs/pair-pay/internal/service"
)

func (h *Handler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		PaidBy      string  `json:"paidBy"`
		ExpenseDate int64   `json:"expenseDate"`
		Notes       string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.expenses.CreateExpense(r.Context(), identity(r), service.CreateExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		PaidBy:      req.PaidBy,
		ExpenseDate: req.ExpenseDate,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "Error al crear el gasto")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"expense": expense,
	})
}

func (h *Handler) handleGetExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := h.expenses.GetExpenses(r.Context(), identity(r))
	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"expenses": expenses,
	})
}

func (h *Handler) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense := h.expenses.GetExpenseByID(r.Context(), identity(r), mux.Vars(r)["id"])
	if expense == nil {
		respondError(w, http.StatusNotFound, msgExpenseNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"expense": expense,
	})
}

func (h *Handler) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description *string  `json:"description"`
		Amount      *float64 `json:"amount"`
		Category    *string  `json:"category"`
		PaidBy      *string  `json:"paidBy"`
		ExpenseDate *int64   `json:"expenseDate"`
		Notes       *string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.expenses.UpdateExpense(r.Context(), identity(r), mux.Vars(r)["id"], service.UpdateExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		PaidBy:      req.PaidBy,
		ExpenseDate: req.ExpenseDate,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(w, http.StatusNotFound, msgExpenseNotFound)
		case errors.Is(err, service.ErrForbidden):
			respondError(w, http.StatusForbidden, msgCannotEdit)
		default:
			respondServiceError(w, err, "Error al actualizar el gasto")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"expense": expense,
	})
}

func (h *Handler) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.expenses.DeleteExpense(r.Context(), identity(r), mux.Vars(r)["id"]); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(w, http.StatusNotFound, msgExpenseNotFound)
		case errors.Is(err, service.ErrForbidden):
			respondError(w, http.StatusForbidden, msgCannotDelete)
		default:
			respondServiceError(w, err, "Error al eliminar el gasto")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": models.Categories,
	})
}
