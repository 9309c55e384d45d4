package lease

import (
	"context"
	"time"

	"rental-app-go/internal/domain/application"
	"rental-app-go/internal/domain/property"
)

// Repository covers everything one lease issuance touches: the source
// application, the property directory flags, the primary occupancy row
// and the backfilled receipts. Keeping them behind one interface lets
// the whole issuance run in a single Transaction closure.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetByID(ctx context.Context, leaseID string) (*Lease, error)
	GetApplication(ctx context.Context, applicationID string) (*application.Application, error)
	GetProperty(ctx context.Context, propertyID string) (*property.Property, error)
	HasLiveLease(ctx context.Context, propertyID, tenantID string) (bool, error)

	Create(ctx context.Context, l *Lease) error
	CreatePrimaryOccupant(ctx context.Context, leaseID, tenantID string, joinedAt time.Time) error
	SetPropertyOccupied(ctx context.Context, propertyID, occupantID string) error
	SetPropertyVacant(ctx context.Context, propertyID string) error
	CreateReceipts(ctx context.Context, receipts []BackfillReceipt) error

	UpdateStatus(ctx context.Context, leaseID string, status Status, endDate *time.Time) error
	DepartActiveOccupants(ctx context.Context, leaseID string, at time.Time) error

	HasInventoryRecord(ctx context.Context, leaseID string, kind InventoryKind) (bool, error)
	CreateInventoryRecord(ctx context.Context, record *InventoryRecord) error

	ListByOwner(ctx context.Context, ownerID string) ([]Lease, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Lease, error)
}
