package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/numenapp/numen-service/internal/models"
)

// SetFixedIncome replaces the fixed monthly income
func (h *Handler) SetFixedIncome(w http.ResponseWriter, r *http.Request) {
	var req models.SetFixedIncomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.SetFixedIncome(r.Context(), req); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"amount": req.Amount})
}

// AddVariableIncome appends a variable income entry
func (h *Handler) AddVariableIncome(w http.ResponseWriter, r *http.Request) {
	var req models.AddVariableIncomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	entry, err := h.svc.AddVariableIncome(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// ListVariableIncomes returns the variable income history
func (h *Handler) ListVariableIncomes(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListVariableIncomes(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// RemoveVariableIncome removes the entry at {index}
func (h *Handler) RemoveVariableIncome(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := h.svc.RemoveVariableIncome(r.Context(), index); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// SetPlannedExpense updates one category's budgeted amount
func (h *Handler) SetPlannedExpense(w http.ResponseWriter, r *http.Request) {
	var req models.SetPlannedExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.SetPlannedExpense(r.Context(), req); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.PlannedExpense{Category: req.Category, Amount: req.Amount})
}

// AddGoal creates a savings goal
func (h *Handler) AddGoal(w http.ResponseWriter, r *http.Request) {
	var req models.AddGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	goal, err := h.svc.AddGoal(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

// DepositToGoal adds funds to the goal at {index}
func (h *Handler) DepositToGoal(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var req models.DepositToGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	goal, err := h.svc.DepositToGoal(r.Context(), index, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// RemoveGoal removes the goal at {index}
func (h *Handler) RemoveGoal(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := h.svc.RemoveGoal(r.Context(), index); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return 0, false
	}
	return index, true
}
