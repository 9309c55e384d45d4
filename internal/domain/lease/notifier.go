package lease

import "context"

// Notifier is best-effort; implementations absorb their own failures.
type Notifier interface {
	LeaseIssued(ctx context.Context, l *Lease, ownerID string)
	RetroactiveWelcome(ctx context.Context, l *Lease, receipts int)
	LeaseEnded(ctx context.Context, l *Lease, ownerID string)
}

type noopNotifier struct{}

func (noopNotifier) LeaseIssued(context.Context, *Lease, string)     {}
func (noopNotifier) RetroactiveWelcome(context.Context, *Lease, int) {}
func (noopNotifier) LeaseEnded(context.Context, *Lease, string)      {}
