package application

import "context"

// Notifier is the best-effort side channel. Implementations must absorb
// their own failures; none of these methods can fail the caller.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, app *Application, ownerID string, documents int)
	ApplicationDecided(ctx context.Context, app *Application)
}

type noopNotifier struct{}

func (noopNotifier) ApplicationSubmitted(context.Context, *Application, string, int) {}
func (noopNotifier) ApplicationDecided(context.Context, *Application)                {}
