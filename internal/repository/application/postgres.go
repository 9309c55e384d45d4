package application

import (
	"context"
	"errors"

	"gorm.io/gorm"
	applicationdomain "rental-app-go/internal/domain/application"
	leasedomain "rental-app-go/internal/domain/lease"
	propertydomain "rental-app-go/internal/domain/property"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(applicationdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetByID(ctx context.Context, applicationID string) (*applicationdomain.Application, error) {
	var app applicationdomain.Application
	if err := r.db.WithContext(ctx).Where("id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, applicationdomain.ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *PostgresRepository) GetProperty(ctx context.Context, propertyID string) (*propertydomain.Property, error) {
	var prop propertydomain.Property
	if err := r.db.WithContext(ctx).Where("id = ?", propertyID).First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, propertydomain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &prop, nil
}

func (r *PostgresRepository) FindActive(ctx context.Context, propertyID, tenantID string) (*applicationdomain.Application, error) {
	var app applicationdomain.Application
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND tenant_id = ? AND status IN ?", propertyID, tenantID,
			[]applicationdomain.Status{applicationdomain.StatusPending, applicationdomain.StatusAccepted}).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *PostgresRepository) FindLatestCancelled(ctx context.Context, propertyID, tenantID string) (*applicationdomain.Application, error) {
	var app applicationdomain.Application
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND tenant_id = ? AND status = ?", propertyID, tenantID, applicationdomain.StatusCancelled).
		Order("updated_at desc").
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *PostgresRepository) HasLiveLease(ctx context.Context, propertyID, tenantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leasedomain.Lease{}).
		Where("property_id = ? AND tenant_id = ? AND status <> ?", propertyID, tenantID, leasedomain.StatusEnded).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) Create(ctx context.Context, app *applicationdomain.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *PostgresRepository) CreateDocumentLinks(ctx context.Context, links []applicationdomain.DocumentLink) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, applicationID string, status applicationdomain.Status) error {
	return r.db.WithContext(ctx).
		Model(&applicationdomain.Application{}).
		Where("id = ?", applicationID).
		Update("status", status).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, applicationID string) error {
	if err := r.db.WithContext(ctx).
		Delete(&applicationdomain.DocumentLink{}, "application_id = ?", applicationID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&applicationdomain.Application{}, "id = ?", applicationID).Error
}

func (r *PostgresRepository) ListByTenant(ctx context.Context, tenantID string) ([]applicationdomain.Application, error) {
	var apps []applicationdomain.Application
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]applicationdomain.Application, error) {
	var apps []applicationdomain.Application
	err := r.db.WithContext(ctx).
		Table("applications").
		Joins("join properties on properties.id = applications.property_id").
		Where("properties.owner_id = ?", ownerID).
		Order("applications.created_at desc").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}
