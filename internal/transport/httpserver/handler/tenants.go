package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/occupancy"
	"rental-app-go/internal/domain/property"
)

type occupantResponse struct {
	LeaseID   string     `json:"leaseId"`
	TenantID  string     `json:"tenantId"`
	IsPrimary bool       `json:"isPrimary"`
	Share     int        `json:"share"`
	JoinedAt  time.Time  `json:"joinedAt"`
	LeftAt    *time.Time `json:"leftAt,omitempty"`
}

func toOccupantResponse(t *occupancy.LeaseTenant) occupantResponse {
	return occupantResponse{
		LeaseID:   t.LeaseID,
		TenantID:  t.TenantID,
		IsPrimary: t.IsPrimary,
		Share:     t.Share,
		JoinedAt:  t.JoinedAt,
		LeftAt:    t.LeftAt,
	}
}

type occupantListResponse struct {
	Occupants  []occupantResponse `json:"occupants"`
	TotalShare int                `json:"totalShare"`
}

func (h *Handlers) ListOccupants(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	list, err := h.Occupants.List(r.Context(), occupancy.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, chi.URLParam(r, "leaseID"))
	if err != nil {
		h.writeOccupancyError(w, err)
		return
	}

	out := occupantListResponse{
		Occupants:  make([]occupantResponse, 0, len(list.Occupants)),
		TotalShare: list.TotalShare,
	}
	for i := range list.Occupants {
		out.Occupants = append(out.Occupants, toOccupantResponse(&list.Occupants[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type addOccupantRequest struct {
	Email string `json:"email"`
	Share *int   `json:"share"`
}

func (h *Handlers) AddOccupant(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req addOccupantRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Email == "" {
		badRequest(w, "email is required")
		return
	}

	added, err := h.Occupants.Add(r.Context(), occupancy.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, chi.URLParam(r, "leaseID"), occupancy.AddInput{
		Email: req.Email,
		Share: req.Share,
	})
	if err != nil {
		h.writeOccupancyError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOccupantResponse(added))
}

type updateOccupantRequest struct {
	Share     *int  `json:"share"`
	IsPrimary *bool `json:"isPrimary"`
}

func (h *Handlers) UpdateOccupant(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req updateOccupantRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Share == nil && req.IsPrimary == nil {
		badRequest(w, "nothing to update")
		return
	}

	updated, err := h.Occupants.Update(r.Context(),
		occupancy.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant},
		chi.URLParam(r, "leaseID"), chi.URLParam(r, "tenantID"),
		occupancy.UpdateInput{Share: req.Share, IsPrimary: req.IsPrimary})
	if err != nil {
		h.writeOccupancyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOccupantResponse(updated))
}

func (h *Handlers) RemoveOccupant(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	err := h.Occupants.Remove(r.Context(),
		occupancy.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant},
		chi.URLParam(r, "leaseID"), chi.URLParam(r, "tenantID"))
	if err != nil {
		h.writeOccupancyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handlers) writeOccupancyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lease.ErrLeaseNotFound):
		writeError(w, http.StatusNotFound, "lease_not_found", "lease not found")
	case errors.Is(err, property.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, "property_not_found", "property not found")
	case errors.Is(err, occupancy.ErrOccupantNotFound):
		writeError(w, http.StatusNotFound, "occupant_not_found", "occupant not found")
	case errors.Is(err, occupancy.ErrNoAccountForEmail):
		writeError(w, http.StatusNotFound, "no_account_for_email", "no account exists for this email")
	case errors.Is(err, occupancy.ErrNotPropertyOwner):
		writeError(w, http.StatusForbidden, "not_property_owner", "not property owner")
	case errors.Is(err, occupancy.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "not allowed to view occupants")
	case errors.Is(err, occupancy.ErrLeaseNotActive):
		writeError(w, http.StatusConflict, "lease_not_active", "lease is not active")
	case errors.Is(err, occupancy.ErrOccupantLimitReached):
		writeError(w, http.StatusConflict, "occupant_limit_reached", "occupant limit reached")
	case errors.Is(err, occupancy.ErrAlreadyOccupant):
		writeError(w, http.StatusConflict, "already_occupant", "already an occupant of this lease")
	case errors.Is(err, occupancy.ErrLastOccupant):
		writeError(w, http.StatusConflict, "last_occupant", "cannot remove the last occupant, end the lease instead")
	case errors.Is(err, occupancy.ErrShareOutOfRange):
		badRequest(w, "share must be between 0 and 100")
	case errors.Is(err, occupancy.ErrCannotUnsetPrimary):
		badRequest(w, "cannot unset primary directly, promote another occupant")
	default:
		h.Log.InternalError("occupancy request failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
