package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/rent-service/internal/service"
	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

// pathID extracts a numeric path parameter
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

type createPropertyRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// CreateProperty handles property creation
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	property, err := h.svc.CreateProperty(r.Context(), req.Name, req.Address)
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusCreated, property)
}

// ListProperties returns the owner's properties
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.svc.ListProperties(r.Context())
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusOK, properties)
}

type createTenantRequest struct {
	PropertyID int64  `json:"property_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	RoomNumber string `json:"room_number" validate:"required"`
	RentAmount int64  `json:"rent_amount" validate:"required,gt=0"`
	EntryDate  string `json:"entry_date" validate:"required,datetime=2006-01-02"`
}

// CreateTenant handles lease registration
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	entryDate, err := time.Parse(dateLayout, req.EntryDate)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	tenant, err := h.svc.CreateTenant(r.Context(), service.CreateTenantInput{
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Email:      req.Email,
		RoomNumber: req.RoomNumber,
		RentAmount: req.RentAmount,
		EntryDate:  entryDate,
	})
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusCreated, tenant)
}

// ListTenants returns all tenants across the owner's properties
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.svc.ListTenants(r.Context())
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusOK, tenants)
}

// CloseContract marks a tenant's lease as finished
func (h *Handler) CloseContract(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.svc.CloseContract(r.Context(), tenantID); err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

// DeleteTenant removes a tenant and its payments
func (h *Handler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.svc.DeleteTenant(r.Context(), tenantID); err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

type recordPaymentRequest struct {
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	DueDate string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// RecordPayment records a rent payment for a tenant
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	var req recordPaymentRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err)
			return
		}
		dueDate = &d
	}

	payment, err := h.svc.RecordPayment(r.Context(), service.RecordPaymentInput{
		TenantID: tenantID,
		Amount:   req.Amount,
		Date:     date,
		DueDate:  dueDate,
	})
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusCreated, payment)
}

// ListPayments returns a tenant's complete payment history
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	payments, err := h.svc.ListPayments(r.Context(), tenantID)
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusOK, payments)
}

// DeletePayment removes a recorded payment
func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	paymentID, err := pathID(r, "paymentID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.svc.DeletePayment(r.Context(), tenantID, paymentID); err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

type addExpenseRequest struct {
	Concept string `json:"concept" validate:"required"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
}

// AddExpense records an expense against a property
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	var req addExpenseRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	expense, err := h.svc.AddExpense(r.Context(), propertyID, req.Concept, req.Amount, date)
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusCreated, expense)
}

// ListExpenses returns all expenses for a property
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	expenses, err := h.svc.ListExpenses(r.Context(), propertyID)
	if err != nil {
		h.respondError(w, statusForError(err), err)
		return
	}
	h.respondJSON(w, http.StatusOK, expenses)
}
