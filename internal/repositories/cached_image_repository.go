package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wander/internal/models/db_models"
)

type CachedImageRepository interface {
	Find(ctx context.Context, tripID uuid.UUID, placeID string) (*db_models.CachedImage, error)
	Save(ctx context.Context, image *db_models.CachedImage) error
}

type cachedImageRepository struct {
	db *gorm.DB
}

func NewCachedImageRepository(db *gorm.DB) CachedImageRepository {
	return &cachedImageRepository{db: db}
}

func (r *cachedImageRepository) Find(ctx context.Context, tripID uuid.UUID, placeID string) (*db_models.CachedImage, error) {
	var image db_models.CachedImage
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND place_id = ?", tripID, placeID).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *cachedImageRepository) Save(ctx context.Context, image *db_models.CachedImage) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trip_id"}, {Name: "place_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"public_url", "source", "updated_at"}),
		}).
		Create(image).Error
}
