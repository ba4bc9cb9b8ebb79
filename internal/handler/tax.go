package handler

import (
	"net/http"
	"strconv"

	"github.com/numenapp/numen-service/internal/models"
)

// EstimateTax previews the bracketed computation
func (h *Handler) EstimateTax(w http.ResponseWriter, r *http.Request) {
	var req models.TaxEstimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	est, err := h.svc.EstimateTax(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, est)
}

// SaveDeclaration computes and stores an unpaid declaration
func (h *Handler) SaveDeclaration(w http.ResponseWriter, r *http.Request) {
	var req models.TaxEstimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	decl, err := h.svc.SaveDeclaration(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, decl)
}

// MarkDeclarationPaid flips the declaration at {index} to paid
func (h *Handler) MarkDeclarationPaid(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	decl, err := h.svc.MarkDeclarationPaid(r.Context(), index)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, decl)
}

// GetTaxes returns the tax overview
func (h *Handler) GetTaxes(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Taxes(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// GetTaxCalendar lists upcoming declaration deadlines (?months=)
func (h *Handler) GetTaxCalendar(w http.ResponseWriter, r *http.Request) {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))
	periods, err := h.svc.TaxCalendar(r.Context(), months)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, periods)
}

// UpdateFiscalProfile replaces the tax identity
func (h *Handler) UpdateFiscalProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateFiscalProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.UpdateFiscalProfile(r.Context(), req); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ExportDeclarations serves the declarations as XML
func (h *Handler) ExportDeclarations(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.ExportDeclarationsXML(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="declarations.xml"`)
	w.Write(doc)
}
