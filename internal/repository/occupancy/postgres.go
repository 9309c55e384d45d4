package occupancy

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	leasedomain "rental-app-go/internal/domain/lease"
	occupancydomain "rental-app-go/internal/domain/occupancy"
	propertydomain "rental-app-go/internal/domain/property"
	userdomain "rental-app-go/internal/domain/user"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(occupancydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetLease(ctx context.Context, leaseID string) (*leasedomain.Lease, error) {
	var l leasedomain.Lease
	if err := r.db.WithContext(ctx).Where("id = ?", leaseID).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leasedomain.ErrLeaseNotFound
		}
		return nil, err
	}
	return &l, nil
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

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	var u userdomain.User
	if err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GrantTenantRole(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ?", userID).
		Update("is_tenant", true).Error
}

func (r *PostgresRepository) Get(ctx context.Context, leaseID, tenantID string) (*occupancydomain.LeaseTenant, error) {
	var row occupancydomain.LeaseTenant
	err := r.db.WithContext(ctx).
		Where("lease_id = ? AND tenant_id = ?", leaseID, tenantID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context, leaseID string) ([]occupancydomain.LeaseTenant, error) {
	var rows []occupancydomain.LeaseTenant
	err := r.db.WithContext(ctx).
		Where("lease_id = ? AND left_at IS NULL", leaseID).
		Order("is_primary desc, joined_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) CountActive(ctx context.Context, leaseID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&occupancydomain.LeaseTenant{}).
		Where("lease_id = ? AND left_at IS NULL", leaseID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *PostgresRepository) Create(ctx context.Context, row *occupancydomain.LeaseTenant) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *PostgresRepository) Rejoin(ctx context.Context, leaseID, tenantID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&occupancydomain.LeaseTenant{}).
		Where("lease_id = ? AND tenant_id = ?", leaseID, tenantID).
		Updates(map[string]interface{}{
			"left_at":    nil,
			"is_primary": false,
			"joined_at":  at,
		}).Error
}

func (r *PostgresRepository) UpdateShare(ctx context.Context, leaseID, tenantID string, share int) error {
	return r.db.WithContext(ctx).
		Model(&occupancydomain.LeaseTenant{}).
		Where("lease_id = ? AND tenant_id = ?", leaseID, tenantID).
		Update("share", share).Error
}

func (r *PostgresRepository) ClearPrimaries(ctx context.Context, leaseID string) error {
	return r.db.WithContext(ctx).
		Model(&occupancydomain.LeaseTenant{}).
		Where("lease_id = ? AND left_at IS NULL", leaseID).
		Update("is_primary", false).Error
}

func (r *PostgresRepository) SetPrimary(ctx context.Context, leaseID, tenantID string) error {
	return r.db.WithContext(ctx).
		Model(&occupancydomain.LeaseTenant{}).
		Where("lease_id = ? AND tenant_id = ?", leaseID, tenantID).
		Update("is_primary", true).Error
}

func (r *PostgresRepository) Depart(ctx context.Context, leaseID, tenantID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&occupancydomain.LeaseTenant{}).
		Where("lease_id = ? AND tenant_id = ?", leaseID, tenantID).
		Update("left_at", at).Error
}
