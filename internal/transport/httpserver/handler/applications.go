package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rental-app-go/internal/domain/application"
	"rental-app-go/internal/domain/property"
)

type applicationResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	TenantID   string    `json:"tenantId"`
	Status     string    `json:"status"`
	Message    *string   `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toApplicationResponse(a *application.Application) applicationResponse {
	return applicationResponse{
		ID:         a.ID,
		PropertyID: a.PropertyID,
		TenantID:   a.TenantID,
		Status:     string(a.Status),
		Message:    a.Message,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

type createApplicationRequest struct {
	PropertyID  string   `json:"propertyId"`
	Message     string   `json:"message"`
	DocumentIDs []string `json:"documentIds"`
}

type createApplicationResponse struct {
	applicationResponse
	DocumentCount int `json:"documentCount"`
}

func (h *Handlers) CreateApplication(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req createApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.PropertyID == "" {
		badRequest(w, "propertyId is required")
		return
	}

	result, err := h.Applications.Create(r.Context(), application.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, application.CreateInput{
		PropertyID:  req.PropertyID,
		Message:     req.Message,
		DocumentIDs: req.DocumentIDs,
	})
	if err != nil {
		h.writeApplicationError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createApplicationResponse{
		applicationResponse: toApplicationResponse(result.Application),
		DocumentCount:       result.DocumentCount,
	})
}

func (h *Handlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	asOwner := r.URL.Query().Get("view") == "owner"
	applications, err := h.Applications.List(r.Context(), application.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, asOwner)
	if err != nil {
		h.writeApplicationError(w, err)
		return
	}

	out := make([]applicationResponse, 0, len(applications))
	for i := range applications {
		out = append(out, toApplicationResponse(&applications[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type decideApplicationRequest struct {
	Status string `json:"status"`
}

func (h *Handlers) DecideApplication(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req decideApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	next := application.Status(req.Status)
	switch next {
	case application.StatusAccepted, application.StatusRejected, application.StatusCancelled:
	default:
		badRequest(w, "status must be ACCEPTED, REJECTED or CANCELLED")
		return
	}

	decided, err := h.Applications.Decide(r.Context(), application.Actor{ID: u.ID, IsOwner: u.IsOwner, IsTenant: u.IsTenant}, chi.URLParam(r, "applicationID"), next)
	if err != nil {
		h.writeApplicationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponse(decided))
}

func (h *Handlers) writeApplicationError(w http.ResponseWriter, err error) {
	var cooldown *application.CooldownError
	switch {
	case errors.As(err, &cooldown):
		writeError(w, http.StatusConflict, "cooldown_active",
			fmt.Sprintf("you must wait %d more day(s) before reapplying", cooldown.DaysLeft))
	case errors.Is(err, application.ErrApplicationNotFound):
		writeError(w, http.StatusNotFound, "application_not_found", "application not found")
	case errors.Is(err, property.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, "property_not_found", "property not found")
	case errors.Is(err, application.ErrTenantRoleRequired):
		writeError(w, http.StatusForbidden, "tenant_role_required", "tenant role required")
	case errors.Is(err, application.ErrNotPropertyOwner):
		writeError(w, http.StatusForbidden, "not_property_owner", "not property owner")
	case errors.Is(err, application.ErrNotApplicant):
		writeError(w, http.StatusForbidden, "not_applicant", "not the applicant")
	case errors.Is(err, application.ErrForeignDocument):
		writeError(w, http.StatusForbidden, "foreign_document", "document not owned by applicant")
	case errors.Is(err, application.ErrOwnProperty):
		writeError(w, http.StatusBadRequest, "own_property", "cannot apply to own property")
	case errors.Is(err, application.ErrPropertyUnavailable):
		writeError(w, http.StatusConflict, "property_unavailable", "property not available")
	case errors.Is(err, application.ErrAlreadyApplied):
		writeError(w, http.StatusConflict, "already_applied", "already applied to this property")
	case errors.Is(err, application.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition", "application already decided")
	default:
		h.Log.InternalError("application request failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
