package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rental-app-go/internal/domain/application"
	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/property"
	"rental-app-go/internal/observability/metrics"
)

const dateLayout = "2006-01-02"

type leaseResponse struct {
	ID          string  `json:"id"`
	PropertyID  string  `json:"propertyId"`
	TenantID    string  `json:"tenantId"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	MonthlyRent float64 `json:"monthlyRent"`
	Deposit     float64 `json:"deposit"`
	Charges     float64 `json:"charges"`
	Status      string  `json:"status"`
}

func toLeaseResponse(l *lease.Lease) leaseResponse {
	resp := leaseResponse{
		ID:          l.ID,
		PropertyID:  l.PropertyID,
		TenantID:    l.TenantID,
		StartDate:   l.StartDate.Format(dateLayout),
		MonthlyRent: l.MonthlyRent,
		Deposit:     l.Deposit,
		Charges:     l.Charges,
		Status:      string(l.Status),
	}
	if l.EndDate != nil {
		end := l.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}
	return resp
}

type createLeaseRequest struct {
	ApplicationID string   `json:"applicationId"`
	StartDate     string   `json:"startDate"`
	EndDate       *string  `json:"endDate"`
	RentAmount    float64  `json:"rentAmount"`
	DepositAmount *float64 `json:"depositAmount"`
}

type createLeaseResponse struct {
	leaseResponse
	ReceiptsGenerated int  `json:"receiptsGenerated"`
	IsRetroactive     bool `json:"isRetroactive"`
}

func (h *Handlers) CreateLease(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req createLeaseRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ApplicationID == "" {
		badRequest(w, "applicationId is required")
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		badRequest(w, "startDate must be YYYY-MM-DD")
		return
	}
	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			badRequest(w, "endDate must be YYYY-MM-DD")
			return
		}
		endDate = &parsed
	}

	result, err := h.Leases.Create(r.Context(), lease.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, lease.CreateInput{
		ApplicationID: req.ApplicationID,
		StartDate:     startDate,
		EndDate:       endDate,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
	})
	if err != nil {
		h.writeLeaseError(w, err)
		return
	}

	metrics.ObserveLeaseIssued(result.IsRetroactive, result.ReceiptsGenerated)
	h.Properties.Invalidate(result.Lease.PropertyID)

	writeJSON(w, http.StatusCreated, createLeaseResponse{
		leaseResponse:     toLeaseResponse(result.Lease),
		ReceiptsGenerated: result.ReceiptsGenerated,
		IsRetroactive:     result.IsRetroactive,
	})
}

func (h *Handlers) ListLeases(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	asOwner := r.URL.Query().Get("view") == "owner"
	leases, err := h.Leases.List(r.Context(), lease.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, asOwner)
	if err != nil {
		h.writeLeaseError(w, err)
		return
	}

	out := make([]leaseResponse, 0, len(leases))
	for i := range leases {
		out = append(out, toLeaseResponse(&leases[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) ActivateLease(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	updated, err := h.Leases.Activate(r.Context(), lease.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, chi.URLParam(r, "leaseID"))
	if err != nil {
		h.writeLeaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeaseResponse(updated))
}

func (h *Handlers) EndLease(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	updated, err := h.Leases.End(r.Context(), lease.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, chi.URLParam(r, "leaseID"))
	if err != nil {
		h.writeLeaseError(w, err)
		return
	}

	h.Properties.Invalidate(updated.PropertyID)
	writeJSON(w, http.StatusOK, toLeaseResponse(updated))
}

type recordInventoryRequest struct {
	Kind string `json:"kind"`
}

type inventoryResponse struct {
	ID         string    `json:"id"`
	LeaseID    string    `json:"leaseId"`
	Kind       string    `json:"kind"`
	RecordedBy string    `json:"recordedBy"`
	RecordedAt time.Time `json:"recordedAt"`
}

func (h *Handlers) RecordInventory(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req recordInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	kind := lease.InventoryKind(req.Kind)
	if kind != lease.InventoryMoveIn && kind != lease.InventoryMoveOut {
		badRequest(w, "kind must be move_in or move_out")
		return
	}

	record, err := h.Leases.RecordInventory(r.Context(), lease.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, chi.URLParam(r, "leaseID"), kind)
	if err != nil {
		h.writeLeaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, inventoryResponse{
		ID:         record.ID,
		LeaseID:    record.LeaseID,
		Kind:       string(record.Kind),
		RecordedBy: record.RecordedBy,
		RecordedAt: record.RecordedAt,
	})
}

func (h *Handlers) writeLeaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lease.ErrLeaseNotFound):
		writeError(w, http.StatusNotFound, "lease_not_found", "lease not found")
	case errors.Is(err, application.ErrApplicationNotFound):
		writeError(w, http.StatusNotFound, "application_not_found", "application not found")
	case errors.Is(err, property.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, "property_not_found", "property not found")
	case errors.Is(err, lease.ErrNotPropertyOwner):
		writeError(w, http.StatusForbidden, "not_property_owner", "not property owner")
	case errors.Is(err, lease.ErrOwnerRoleRequired):
		writeError(w, http.StatusForbidden, "owner_role_required", "owner role required")
	case errors.Is(err, lease.ErrApplicationNotAccepted):
		writeError(w, http.StatusConflict, "application_not_accepted", "application not accepted")
	case errors.Is(err, lease.ErrLeaseExists):
		writeError(w, http.StatusConflict, "lease_exists", "active lease already exists for this property and tenant")
	case errors.Is(err, lease.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition", "invalid lease transition")
	case errors.Is(err, lease.ErrMoveInInventoryRequired):
		writeError(w, http.StatusConflict, "move_in_inventory_required", "move-in inventory confirmation required")
	case errors.Is(err, lease.ErrMoveOutInventoryRequired):
		writeError(w, http.StatusConflict, "move_out_inventory_required", "move-out inventory confirmation required")
	case errors.Is(err, lease.ErrInvalidInput):
		badRequest(w, err.Error())
	default:
		h.Log.InternalError("lease request failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
