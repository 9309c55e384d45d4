package handler

import (
	"net/http"

	"rental-app-go/internal/domain/application"
	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/notification"
	"rental-app-go/internal/domain/occupancy"
	"rental-app-go/internal/domain/property"
	"rental-app-go/internal/domain/receipt"
	"rental-app-go/internal/domain/user"
	"rental-app-go/internal/transport/httpserver/middleware"
	"rental-app-go/pkg/logger"
)

type Handlers struct {
	Properties    *property.Service
	Users         *user.Service
	Applications  *application.Service
	Leases        *lease.Service
	Occupants     *occupancy.Service
	Receipts      *receipt.Service
	Notifications *notification.Service
	Log           logger.Logger
}

func New(
	properties *property.Service,
	users *user.Service,
	applications *application.Service,
	leases *lease.Service,
	occupants *occupancy.Service,
	receipts *receipt.Service,
	notifications *notification.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Properties:    properties,
		Users:         users,
		Applications:  applications,
		Leases:        leases,
		Occupants:     occupants,
		Receipts:      receipts,
		Notifications: notifications,
		Log:           log,
	}
}

// caller pulls the authenticated user out of the request context. The
// auth middleware guarantees it is present on protected routes; the
// false branch only fires on wiring mistakes.
func (h *Handlers) caller(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return middleware.User{}, false
	}
	return u, true
}
