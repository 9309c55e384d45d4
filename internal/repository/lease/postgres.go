package lease

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	applicationdomain "rental-app-go/internal/domain/application"
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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(leasedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetByID(ctx context.Context, leaseID string) (*leasedomain.Lease, error) {
	var l leasedomain.Lease
	if err := r.db.WithContext(ctx).Where("id = ?", leaseID).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leasedomain.ErrLeaseNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *PostgresRepository) GetApplication(ctx context.Context, applicationID string) (*applicationdomain.Application, error) {
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

func (r *PostgresRepository) Create(ctx context.Context, l *leasedomain.Lease) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *PostgresRepository) CreatePrimaryOccupant(ctx context.Context, leaseID, tenantID string, joinedAt time.Time) error {
	row := occupancydomain.LeaseTenant{
		LeaseID:   leaseID,
		TenantID:  tenantID,
		IsPrimary: true,
		Share:     100,
		JoinedAt:  joinedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *PostgresRepository) SetPropertyOccupied(ctx context.Context, propertyID, occupantID string) error {
	return r.db.WithContext(ctx).
		Model(&propertydomain.Property{}).
		Where("id = ?", propertyID).
		Updates(map[string]interface{}{"available": false, "occupant_id": occupantID}).Error
}

func (r *PostgresRepository) SetPropertyVacant(ctx context.Context, propertyID string) error {
	return r.db.WithContext(ctx).
		Model(&propertydomain.Property{}).
		Where("id = ?", propertyID).
		Updates(map[string]interface{}{"available": true, "occupant_id": nil}).Error
}

func (r *PostgresRepository) CreateReceipts(ctx context.Context, receipts []leasedomain.BackfillReceipt) error {
	if len(receipts) == 0 {
		return nil
	}

	rows := make([]receiptdomain.Receipt, 0, len(receipts))
	for _, b := range receipts {
		paidAt := b.PaidAt
		rows = append(rows, receiptdomain.Receipt{
			ID:          uuid.NewString(),
			LeaseID:     b.LeaseID,
			Month:       b.Month,
			Year:        b.Year,
			RentAmount:  b.RentAmount,
			Charges:     b.Charges,
			TotalAmount: b.TotalAmount,
			Status:      receiptdomain.StatusConfirmed,
			DeclaredAt:  b.PaidAt,
			PaidAt:      &paidAt,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, leaseID string, status leasedomain.Status, endDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if endDate != nil {
		updates["end_date"] = *endDate
	}
	return r.db.WithContext(ctx).
		Model(&leasedomain.Lease{}).
		Where("id = ?", leaseID).
		Updates(updates).Error
}

func (r *PostgresRepository) DepartActiveOccupants(ctx context.Context, leaseID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&occupancydomain.LeaseTenant{}).
		Where("lease_id = ? AND left_at IS NULL", leaseID).
		Update("left_at", at).Error
}

func (r *PostgresRepository) HasInventoryRecord(ctx context.Context, leaseID string, kind leasedomain.InventoryKind) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leasedomain.InventoryRecord{}).
		Where("lease_id = ? AND kind = ?", leaseID, kind).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateInventoryRecord(ctx context.Context, record *leasedomain.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]leasedomain.Lease, error) {
	var leases []leasedomain.Lease
	err := r.db.WithContext(ctx).
		Table("leases").
		Joins("join properties on properties.id = leases.property_id").
		Where("properties.owner_id = ?", ownerID).
		Order("leases.created_at desc").
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	return leases, nil
}

func (r *PostgresRepository) ListByTenant(ctx context.Context, tenantID string) ([]leasedomain.Lease, error) {
	var leases []leasedomain.Lease
	err := r.db.WithContext(ctx).
		Table("leases").
		Joins("join lease_tenants on lease_tenants.lease_id = leases.id").
		Where("lease_tenants.tenant_id = ? AND lease_tenants.left_at IS NULL", tenantID).
		Order("leases.created_at desc").
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	return leases, nil
}
