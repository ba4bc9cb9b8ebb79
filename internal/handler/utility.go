package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/numenapp/numen-service/internal/models"
)

// ConfigureUtility upserts a utility configuration
func (h *Handler) ConfigureUtility(w http.ResponseWriter, r *http.Request) {
	var req models.ConfigureUtilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.ConfigureUtility(r.Context(), req); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "configured"})
}

// RegisterUtilityPayment records a paid utility bill
func (h *Handler) RegisterUtilityPayment(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUtilityPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	payment, err := h.svc.RegisterUtilityPayment(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// GetPendingUtilities lists unpaid utilities for ?year=&month=
// (defaulting to the current month)
func (h *Handler) GetPendingUtilities(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	monthNum, _ := strconv.Atoi(r.URL.Query().Get("month"))
	if monthNum < 0 || monthNum > 12 {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid month"})
		return
	}
	result, err := h.svc.PendingUtilities(r.Context(), year, time.Month(monthNum))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetUtilities returns the utility overview
func (h *Handler) GetUtilities(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Utilities(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}
