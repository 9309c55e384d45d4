package property

import "context"

type Repository interface {
	GetByID(ctx context.Context, propertyID string) (*Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Property, error)
	ListAvailable(ctx context.Context) ([]Property, error)
	Create(ctx context.Context, p *Property) error
}
