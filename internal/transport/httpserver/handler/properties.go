package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rental-app-go/internal/domain/property"
)

type propertyResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	MonthlyRent float64   `json:"monthlyRent"`
	Charges     float64   `json:"charges"`
	Available   bool      `json:"available"`
	OccupantID  *string   `json:"occupantId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toPropertyResponse(p *property.Property) propertyResponse {
	return propertyResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Address:     p.Address,
		MonthlyRent: p.MonthlyRent,
		Charges:     p.Charges,
		Available:   p.Available,
		OccupantID:  p.OccupantID,
		CreatedAt:   p.CreatedAt,
	}
}

type createPropertyRequest struct {
	Title       string  `json:"title"`
	Address     string  `json:"address"`
	MonthlyRent float64 `json:"monthlyRent"`
	Charges     float64 `json:"charges"`
}

func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}
	if !u.IsOwner {
		writeError(w, http.StatusForbidden, "owner_role_required", "owner role required")
		return
	}

	var req createPropertyRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	p, err := h.Properties.Create(r.Context(), property.CreateInput{
		OwnerID:     u.ID,
		Title:       req.Title,
		Address:     req.Address,
		MonthlyRent: req.MonthlyRent,
		Charges:     req.Charges,
	})
	if err != nil {
		if errors.Is(err, property.ErrInvalidInput) {
			badRequest(w, err.Error())
			return
		}
		h.Log.InternalError("create property failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toPropertyResponse(p))
}

// ListProperties serves two views: owners asking for their portfolio
// (?view=mine) and tenants browsing the available pool (default).
func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	var (
		properties []property.Property
		err        error
	)
	if r.URL.Query().Get("view") == "mine" {
		if !u.IsOwner {
			writeError(w, http.StatusForbidden, "owner_role_required", "owner role required")
			return
		}
		properties, err = h.Properties.ListByOwner(r.Context(), u.ID)
	} else {
		properties, err = h.Properties.ListAvailable(r.Context())
	}
	if err != nil {
		h.Log.InternalError("list properties failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	out := make([]propertyResponse, 0, len(properties))
	for i := range properties {
		out = append(out, toPropertyResponse(&properties[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.caller(w, r); !ok {
		return
	}

	p, err := h.Properties.Get(r.Context(), chi.URLParam(r, "propertyID"))
	if err != nil {
		if errors.Is(err, property.ErrPropertyNotFound) {
			writeError(w, http.StatusNotFound, "property_not_found", "property not found")
			return
		}
		h.Log.InternalError("get property failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toPropertyResponse(p))
}
