package document

import (
	"context"

	"gorm.io/gorm"
	documentdomain "rental-app-go/internal/domain/document"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AllOwnedBy(ctx context.Context, documentIDs []string, userID string) (bool, error) {
	if len(documentIDs) == 0 {
		return true, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&documentdomain.Document{}).
		Where("id IN ? AND owner_id = ?", documentIDs, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == int64(len(documentIDs)), nil
}
