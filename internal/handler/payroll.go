package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/numenapp/numen-service/internal/models"
)

// AddWorker appends a worker to the roster
func (h *Handler) AddWorker(w http.ResponseWriter, r *http.Request) {
	var req models.AddWorkerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	worker, err := h.svc.AddWorker(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, worker)
}

// DeactivateWorker soft-deletes the worker at {id}
func (h *Handler) DeactivateWorker(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid worker id"})
		return
	}
	if err := h.svc.DeactivateWorker(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// RecordPayrollRun computes and stores a weekly run
func (h *Handler) RecordPayrollRun(w http.ResponseWriter, r *http.Request) {
	var req models.RecordPayrollRunRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	run, err := h.svc.RecordPayrollRun(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, run)
}

// GetPayroll returns the payroll overview
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Payroll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// SetLevyConfig updates the payroll levy configuration
func (h *Handler) SetLevyConfig(w http.ResponseWriter, r *http.Request) {
	var req models.SetLevyConfigRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.SetLevyConfig(r.Context(), req); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req.Config)
}

// ComputeLevies previews the levy breakdown for the run at {index}
func (h *Handler) ComputeLevies(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	breakdown, err := h.svc.ComputeLevies(r.Context(), index)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}

// RegisterLevyPayment stores a tributary payment for the run at {index}
func (h *Handler) RegisterLevyPayment(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	payment, err := h.svc.RegisterLevyPayment(r.Context(), index)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// MarkLevyPaymentPaid flips the levy payment at {index} to paid
func (h *Handler) MarkLevyPaymentPaid(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkLevyPaymentPaid(r.Context(), index); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}
