package application

import (
	"context"

	"rental-app-go/internal/domain/property"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetByID(ctx context.Context, applicationID string) (*Application, error)
	GetProperty(ctx context.Context, propertyID string) (*property.Property, error)
	// FindActive returns the PENDING or ACCEPTED application for the
	// pair, if any.
	FindActive(ctx context.Context, propertyID, tenantID string) (*Application, error)
	// FindLatestCancelled returns the most recently cancelled
	// application for the pair, if any.
	FindLatestCancelled(ctx context.Context, propertyID, tenantID string) (*Application, error)
	// HasLiveLease reports whether a non-ENDED lease binds the pair.
	HasLiveLease(ctx context.Context, propertyID, tenantID string) (bool, error)
	Create(ctx context.Context, app *Application) error
	CreateDocumentLinks(ctx context.Context, links []DocumentLink) error
	UpdateStatus(ctx context.Context, applicationID string, status Status) error
	Delete(ctx context.Context, applicationID string) error
	ListByTenant(ctx context.Context, tenantID string) ([]Application, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Application, error)
}
