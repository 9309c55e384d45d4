package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
	notificationdomain "rental-app-go/internal/domain/notification"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, n *notificationdomain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]notificationdomain.Notification, error) {
	var notifications []notificationdomain.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	result := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notificationdomain.ErrNotificationNotFound
	}
	return nil
}
