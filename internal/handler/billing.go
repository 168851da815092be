package handler

import (
	"errors"
	"net/http"

	"github.com/Dan9191/rent-service/internal/billing"
)

// TenantStatus returns a tenant's payment standing
func (h *Handler) TenantStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	status, err := h.svc.TenantStatus(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidDate) {
			h.respondError(w, http.StatusUnprocessableEntity, err)
			return
		}
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusOK, status)
}

// ListDebtors returns active tenants in arrears, most severe first
func (h *Handler) ListDebtors(w http.ResponseWriter, r *http.Request) {
	debtors, err := h.svc.ListDebtors(r.Context())
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusOK, debtors)
}

// Notifications returns overdue and upcoming-payment alerts
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Notifications(r.Context())
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}

// Dashboard returns current-month portfolio statistics
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.DashboardStats(r.Context())
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}

// LateFee returns a late-payment surcharge estimate for a tenant
func (h *Handler) LateFee(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	estimate, err := h.svc.EstimateLateFee(r.Context(), tenantID)
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusOK, estimate)
}
