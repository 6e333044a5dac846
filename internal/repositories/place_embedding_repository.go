package repositories

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"wander/internal/models/db_models"
)

type PlaceEmbeddingRepository interface {
	SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.PlaceEmbedding, error)
	FindByPlaceID(ctx context.Context, placeID string) (*db_models.PlaceEmbedding, error)
	Upsert(ctx context.Context, embedding *db_models.PlaceEmbedding) error
}

type placeEmbeddingRepository struct {
	db *gorm.DB
}

func NewPlaceEmbeddingRepository(db *gorm.DB) PlaceEmbeddingRepository {
	return &placeEmbeddingRepository{db: db}
}

func (r *placeEmbeddingRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.PlaceEmbedding, error) {
	if limit <= 0 || limit > 25 {
		limit = 15
	}

	var results []db_models.PlaceEmbedding
	query := `
        SELECT *, (1 - (embedding <=> $1)) AS similarity
        FROM place_embeddings
        WHERE (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT $2
    `
	err := r.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *placeEmbeddingRepository) FindByPlaceID(ctx context.Context, placeID string) (*db_models.PlaceEmbedding, error) {
	var embedding db_models.PlaceEmbedding
	err := r.db.WithContext(ctx).First(&embedding, "place_id = ?", placeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &embedding, nil
}

func (r *placeEmbeddingRepository) Upsert(ctx context.Context, embedding *db_models.PlaceEmbedding) error {
	return r.db.WithContext(ctx).
		Where("place_id = ?", embedding.PlaceID).
		Assign(embedding).
		FirstOrCreate(embedding).Error
}
