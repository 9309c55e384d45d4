package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/property"
	"rental-app-go/internal/domain/receipt"
)

type receiptResponse struct {
	ID          string     `json:"id"`
	LeaseID     string     `json:"leaseId"`
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	RentAmount  float64    `json:"rentAmount"`
	Charges     float64    `json:"charges"`
	TotalAmount float64    `json:"totalAmount"`
	Status      string     `json:"status"`
	DeclaredAt  time.Time  `json:"declaredAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
}

func toReceiptResponse(r *receipt.Receipt) receiptResponse {
	return receiptResponse{
		ID:          r.ID,
		LeaseID:     r.LeaseID,
		Month:       r.Month,
		Year:        r.Year,
		RentAmount:  r.RentAmount,
		Charges:     r.Charges,
		TotalAmount: r.TotalAmount,
		Status:      string(r.Status),
		DeclaredAt:  r.DeclaredAt,
		PaidAt:      r.PaidAt,
	}
}

type declareReceiptRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// DeclarePayment is the tenant's half of the declare/confirm protocol.
func (h *Handlers) DeclarePayment(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req declareReceiptRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := h.Receipts.Declare(r.Context(), receipt.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, receipt.PeriodInput{
		LeaseID: chi.URLParam(r, "leaseID"),
		Month:   req.Month,
		Year:    req.Year,
	})
	if err != nil {
		h.writeReceiptError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReceiptResponse(created))
}

// ConfirmPayment is the owner's half: a declared receipt becomes
// confirmed and gets its payment timestamp.
func (h *Handlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	confirmed, err := h.Receipts.Confirm(r.Context(), receipt.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, chi.URLParam(r, "receiptID"))
	if err != nil {
		h.writeReceiptError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReceiptResponse(confirmed))
}

// RecordPayment is the owner's one-step variant for cash or manual
// bookkeeping: the receipt is created already confirmed.
func (h *Handlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req declareReceiptRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := h.Receipts.OwnerDeclareConfirm(r.Context(), receipt.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, receipt.PeriodInput{
		LeaseID: chi.URLParam(r, "leaseID"),
		Month:   req.Month,
		Year:    req.Year,
	})
	if err != nil {
		h.writeReceiptError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReceiptResponse(created))
}

func (h *Handlers) ListReceipts(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	receipts, err := h.Receipts.List(r.Context(), receipt.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, chi.URLParam(r, "leaseID"))
	if err != nil {
		h.writeReceiptError(w, err)
		return
	}

	out := make([]receiptResponse, 0, len(receipts))
	for i := range receipts {
		out = append(out, toReceiptResponse(&receipts[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) writeReceiptError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, receipt.ErrReceiptNotFound):
		writeError(w, http.StatusNotFound, "receipt_not_found", "receipt not found")
	case errors.Is(err, lease.ErrLeaseNotFound):
		writeError(w, http.StatusNotFound, "lease_not_found", "lease not found")
	case errors.Is(err, property.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, "property_not_found", "property not found")
	case errors.Is(err, receipt.ErrTenantRoleRequired):
		writeError(w, http.StatusForbidden, "tenant_role_required", "tenant role required")
	case errors.Is(err, receipt.ErrNotPropertyOwner):
		writeError(w, http.StatusForbidden, "not_property_owner", "not property owner")
	case errors.Is(err, receipt.ErrNotOccupant):
		writeError(w, http.StatusForbidden, "not_occupant", "not an occupant of this lease")
	case errors.Is(err, receipt.ErrLeaseNotActive):
		writeError(w, http.StatusConflict, "lease_not_active", "lease is not active")
	case errors.Is(err, receipt.ErrReceiptExists):
		writeError(w, http.StatusConflict, "receipt_exists", "receipt already exists for this period")
	case errors.Is(err, receipt.ErrAlreadyConfirmed):
		writeError(w, http.StatusConflict, "already_confirmed", "receipt already confirmed")
	case errors.Is(err, receipt.ErrMonthOutOfRange):
		badRequest(w, "month outside the lease period")
	case errors.Is(err, receipt.ErrInvalidPeriod):
		badRequest(w, "invalid month or year")
	default:
		h.Log.InternalError("receipt request failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
