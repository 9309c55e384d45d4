package property

import (
	"context"
	"errors"

	"gorm.io/gorm"
	propertydomain "rental-app-go/internal/domain/property"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, propertyID string) (*propertydomain.Property, error) {
	var prop propertydomain.Property
	if err := r.db.WithContext(ctx).Where("id = ?", propertyID).First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, propertydomain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &prop, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]propertydomain.Property, error) {
	var properties []propertydomain.Property
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PostgresRepository) ListAvailable(ctx context.Context) ([]propertydomain.Property, error) {
	var properties []propertydomain.Property
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("created_at desc").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PostgresRepository) Create(ctx context.Context, prop *propertydomain.Property) error {
	return r.db.WithContext(ctx).Create(prop).Error
}
