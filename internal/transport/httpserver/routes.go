package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rental-app-go/internal/config"
	"rental-app-go/internal/observability/metrics"
	"rental-app-go/internal/transport/httpserver/handler"
	"rental-app-go/internal/transport/httpserver/middleware"
	"rental-app-go/pkg/logger"
)

func NewRouter(cfg config.Config, h *handler.Handlers, auth *middleware.Auth, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSAllowedOrigins))
	r.Use(metrics.Middleware)

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(auth.Middleware)
		if cfg.RateLimit.MaxRequests > 0 {
			api.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware)
		}

		api.Get("/me", h.Me)

		api.Route("/properties", func(pr chi.Router) {
			pr.Get("/", h.ListProperties)
			pr.Post("/", h.CreateProperty)
			pr.Get("/{propertyID}", h.GetProperty)
		})

		api.Route("/applications", func(ar chi.Router) {
			ar.Get("/", h.ListApplications)
			ar.Post("/", h.CreateApplication)
			ar.Patch("/{applicationID}", h.DecideApplication)
		})

		api.Route("/leases", func(lr chi.Router) {
			lr.Get("/", h.ListLeases)
			lr.Post("/", h.CreateLease)
			lr.Post("/{leaseID}/activate", h.ActivateLease)
			lr.Post("/{leaseID}/end", h.EndLease)
			lr.Post("/{leaseID}/inventory", h.RecordInventory)

			lr.Route("/{leaseID}/tenants", func(tr chi.Router) {
				tr.Get("/", h.ListOccupants)
				tr.Post("/", h.AddOccupant)
				tr.Patch("/{tenantID}", h.UpdateOccupant)
				tr.Delete("/{tenantID}", h.RemoveOccupant)
			})

			lr.Route("/{leaseID}/receipts", func(rr chi.Router) {
				rr.Get("/", h.ListReceipts)
				rr.Post("/", h.DeclarePayment)
				rr.Post("/confirmed", h.RecordPayment)
			})
		})

		api.Post("/receipts/{receiptID}/confirm", h.ConfirmPayment)

		api.Route("/notifications", func(nr chi.Router) {
			nr.Get("/", h.ListNotifications)
			nr.Post("/{notificationID}/read", h.MarkNotificationRead)
		})
	})

	return r
}
