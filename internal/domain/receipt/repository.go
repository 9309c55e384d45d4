package receipt

import (
	"context"
	"time"

	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/occupancy"
	"rental-app-go/internal/domain/property"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetLease(ctx context.Context, leaseID string) (*lease.Lease, error)
	GetProperty(ctx context.Context, propertyID string) (*property.Property, error)
	// GetOccupant returns (nil, nil) when the tenant has no occupancy
	// row on the lease.
	GetOccupant(ctx context.Context, leaseID, tenantID string) (*occupancy.LeaseTenant, error)

	GetByID(ctx context.Context, receiptID string) (*Receipt, error)
	Exists(ctx context.Context, leaseID string, month, year int) (bool, error)
	Create(ctx context.Context, r *Receipt) error
	Confirm(ctx context.Context, receiptID string, paidAt time.Time) error
	// ListByLease returns receipts ordered by (year, month) ascending.
	ListByLease(ctx context.Context, leaseID string) ([]Receipt, error)
}
