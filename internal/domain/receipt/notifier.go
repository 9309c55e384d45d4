package receipt

import "context"

// Notifier is best-effort; implementations absorb their own failures.
type Notifier interface {
	PaymentDeclared(ctx context.Context, r *Receipt, ownerID string)
	PaymentConfirmed(ctx context.Context, r *Receipt, tenantID string)
}

type noopNotifier struct{}

func (noopNotifier) PaymentDeclared(context.Context, *Receipt, string)  {}
func (noopNotifier) PaymentConfirmed(context.Context, *Receipt, string) {}
