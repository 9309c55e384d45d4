// Package notify implements the best-effort side channel behind every
// domain Notifier interface. Nothing here can fail a business
// operation: persistence and mail errors are logged and dropped, and
// the Notifier methods have no return value to propagate.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"rental-app-go/internal/domain/application"
	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/notification"
	"rental-app-go/internal/domain/receipt"
	"rental-app-go/internal/domain/user"
	"rental-app-go/pkg/logger"
)

type userDirectory interface {
	GetByID(ctx context.Context, userID string) (*user.User, error)
}

type Dispatcher struct {
	notifications notification.Repository
	users         userDirectory
	mailer        Mailer
	log           logger.Logger
}

func NewDispatcher(notifications notification.Repository, users userDirectory, mailer Mailer, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		users:         users,
		mailer:        mailer,
		log:           log,
	}
}

func (d *Dispatcher) ApplicationSubmitted(ctx context.Context, app *application.Application, ownerID string, documents int) {
	message := "A tenant applied to your property."
	if documents > 0 {
		message = fmt.Sprintf("A tenant applied to your property with %d document(s) attached.", documents)
	}
	d.deliver(ctx, ownerID, "application_submitted", "New tenancy application", message, link("/applications/%s", app.ID))
}

func (d *Dispatcher) ApplicationDecided(ctx context.Context, app *application.Application) {
	var title, message string
	switch app.Status {
	case application.StatusAccepted:
		title = "Application accepted"
		message = "Your application was accepted. The owner can now issue a lease."
	case application.StatusRejected:
		title = "Application rejected"
		message = "Your application was rejected."
	case application.StatusCancelled:
		title = "Application cancelled"
		message = "Your application was cancelled."
	default:
		return
	}
	d.deliver(ctx, app.TenantID, "application_decided", title, message, link("/applications/%s", app.ID))
}

func (d *Dispatcher) LeaseIssued(ctx context.Context, l *lease.Lease, ownerID string) {
	d.deliver(ctx, l.TenantID, "lease_issued", "Your lease is ready",
		fmt.Sprintf("A lease starting %s was issued for you.", l.StartDate.Format("2006-01-02")),
		link("/leases/%s", l.ID))
	d.deliver(ctx, ownerID, "lease_issued", "Lease issued",
		"The lease was created and the property is now marked occupied.",
		link("/leases/%s", l.ID))
}

func (d *Dispatcher) RetroactiveWelcome(ctx context.Context, l *lease.Lease, receipts int) {
	d.deliver(ctx, l.TenantID, "lease_retroactive", "Welcome to your home",
		fmt.Sprintf("Welcome! Your %d receipt(s) are ready. Remember to configure your services.", receipts),
		link("/leases/%s/receipts", l.ID))
}

func (d *Dispatcher) LeaseEnded(ctx context.Context, l *lease.Lease, ownerID string) {
	message := "The lease has ended and the property is available again."
	d.deliver(ctx, l.TenantID, "lease_ended", "Lease ended", message, link("/leases/%s", l.ID))
	d.deliver(ctx, ownerID, "lease_ended", "Lease ended", message, link("/leases/%s", l.ID))
}

func (d *Dispatcher) OccupantAdded(ctx context.Context, l *lease.Lease, tenantID string, share int) {
	d.deliver(ctx, tenantID, "occupant_added", "You joined a lease",
		fmt.Sprintf("You were added to a lease with a %d%% rent share.", share),
		link("/leases/%s", l.ID))
}

func (d *Dispatcher) OccupantRemoved(ctx context.Context, l *lease.Lease, tenantID string) {
	d.deliver(ctx, tenantID, "occupant_removed", "You left a lease",
		"You are no longer an occupant of this lease.", nil)
}

func (d *Dispatcher) PaymentDeclared(ctx context.Context, r *receipt.Receipt, ownerID string) {
	d.deliver(ctx, ownerID, "payment_declared", "Rent payment declared",
		fmt.Sprintf("A tenant declared the %02d/%d rent as paid. Please confirm.", r.Month, r.Year),
		link("/leases/%s/receipts", r.LeaseID))
}

func (d *Dispatcher) PaymentConfirmed(ctx context.Context, r *receipt.Receipt, tenantID string) {
	d.deliver(ctx, tenantID, "payment_confirmed", "Rent payment confirmed",
		fmt.Sprintf("Your %02d/%d rent payment was confirmed.", r.Month, r.Year),
		link("/leases/%s/receipts", r.LeaseID))
}

// deliver writes the in-app notification and mirrors it by mail. Both
// paths are best-effort.
func (d *Dispatcher) deliver(ctx context.Context, userID, kind, title, message string, link *string) {
	n := notification.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now(),
	}
	if err := d.notifications.Create(ctx, &n); err != nil {
		d.log.BusinessError("notify: store notification failed", err, "user_id", userID, "type", kind)
	}

	recipient, err := d.users.GetByID(ctx, userID)
	if err != nil {
		d.log.BusinessError("notify: resolve recipient failed", err, "user_id", userID, "type", kind)
		return
	}

	data := map[string]string{"message": message}
	if link != nil {
		data["link"] = *link
	}
	if err := d.mailer.Send(ctx, recipient.Email, title, data); err != nil {
		d.log.BusinessError("notify: send mail failed", err, "user_id", userID, "type", kind)
	}
}

func link(format string, args ...any) *string {
	value := fmt.Sprintf(format, args...)
	return &value
}
