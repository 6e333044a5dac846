package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wander/internal/models/db_models"
)

type TripRepository interface {
	GetByID(ctx context.Context, tripID uuid.UUID) (*db_models.Trip, error)
	Create(ctx context.Context, trip *db_models.Trip) error
	FindMember(ctx context.Context, tripID, accountID uuid.UUID) (*db_models.TripMember, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) GetByID(ctx context.Context, tripID uuid.UUID) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).First(&trip, "id = ?", tripID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

// Create inserts the trip together with an owner membership row so the
// owner's quota counters exist from day one.
func (r *tripRepository) Create(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		member := db_models.TripMember{
			TripID:    trip.ID,
			AccountID: trip.OwnerID,
			Role:      "owner",
		}
		return tx.Create(&member).Error
	})
}

func (r *tripRepository) FindMember(ctx context.Context, tripID, accountID uuid.UUID) (*db_models.TripMember, error) {
	var member db_models.TripMember
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND account_id = ?", tripID, accountID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}
