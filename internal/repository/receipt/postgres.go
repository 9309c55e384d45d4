package receipt

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	leasedomain "rental-app-go/internal/domain/lease"
	occupancydomain "rental-app-go/internal/domain/occupancy"
	propertydomain "rental-app-go/internal/domain/property"
	receiptdomain "rental-app-go/internal/domain/receipt"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(receiptdomain.Repository) error) error {
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

func (r *PostgresRepository) GetOccupant(ctx context.Context, leaseID, tenantID string) (*occupancydomain.LeaseTenant, error) {
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

func (r *PostgresRepository) GetByID(ctx context.Context, receiptID string) (*receiptdomain.Receipt, error) {
	var rec receiptdomain.Receipt
	if err := r.db.WithContext(ctx).Where("id = ?", receiptID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, receiptdomain.ErrReceiptNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, leaseID string, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&receiptdomain.Receipt{}).
		Where("lease_id = ? AND month = ? AND year = ?", leaseID, month, year).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *receiptdomain.Receipt) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *PostgresRepository) Confirm(ctx context.Context, receiptID string, paidAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&receiptdomain.Receipt{}).
		Where("id = ?", receiptID).
		Updates(map[string]interface{}{
			"status":  receiptdomain.StatusConfirmed,
			"paid_at": paidAt,
		}).Error
}

func (r *PostgresRepository) ListByLease(ctx context.Context, leaseID string) ([]receiptdomain.Receipt, error) {
	var receipts []receiptdomain.Receipt
	err := r.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Order("year asc, month asc").
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}
