package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wander/internal/models/db_models"
)

type SubscriptionRepository interface {
	HasActiveSubscription(ctx context.Context, accountID uuid.UUID, nowUnix int64) (bool, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) HasActiveSubscription(ctx context.Context, accountID uuid.UUID, nowUnix int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("account_id = ? AND status IN ? AND ends_at > ?",
			accountID,
			[]db_models.SubscriptionStatus{db_models.SubStatusActive, db_models.SubStatusTrialing},
			nowUnix).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
