package occupancy

import (
	"context"

	"rental-app-go/internal/domain/lease"
)

// Notifier is best-effort; implementations absorb their own failures.
type Notifier interface {
	OccupantAdded(ctx context.Context, l *lease.Lease, tenantID string, share int)
	OccupantRemoved(ctx context.Context, l *lease.Lease, tenantID string)
}

type noopNotifier struct{}

func (noopNotifier) OccupantAdded(context.Context, *lease.Lease, string, int) {}
func (noopNotifier) OccupantRemoved(context.Context, *lease.Lease, string)    {}
