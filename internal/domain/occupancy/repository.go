package occupancy

import (
	"context"
	"time"

	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/property"
	"rental-app-go/internal/domain/user"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetLease(ctx context.Context, leaseID string) (*lease.Lease, error)
	GetProperty(ctx context.Context, propertyID string) (*property.Property, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GrantTenantRole(ctx context.Context, userID string) error

	// Get returns the row regardless of departure state, or (nil, nil)
	// when no row exists for the pair.
	Get(ctx context.Context, leaseID, tenantID string) (*LeaseTenant, error)
	// ListActive returns active rows, primary first, then by join time.
	ListActive(ctx context.Context, leaseID string) ([]LeaseTenant, error)
	CountActive(ctx context.Context, leaseID string) (int, error)

	Create(ctx context.Context, row *LeaseTenant) error
	// Rejoin reactivates a departed row: clears LeftAt, drops the
	// primary flag and restamps JoinedAt. The composite key stays.
	Rejoin(ctx context.Context, leaseID, tenantID string, at time.Time) error
	UpdateShare(ctx context.Context, leaseID, tenantID string, share int) error
	// ClearPrimaries drops the primary flag on every active occupant.
	ClearPrimaries(ctx context.Context, leaseID string) error
	SetPrimary(ctx context.Context, leaseID, tenantID string) error
	Depart(ctx context.Context, leaseID, tenantID string, at time.Time) error
}
