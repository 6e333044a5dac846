package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dm "wander/internal/models/db_models"
	"wander/internal/models/doc_models"
)

type ItineraryRepository interface {
	LoadDocument(ctx context.Context, tripID uuid.UUID, segmentID string) (*doc_models.ItineraryDocument, error)
	SaveDocument(ctx context.Context, tripID uuid.UUID, segmentID string, doc *doc_models.ItineraryDocument) error
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) LoadDocument(ctx context.Context, tripID uuid.UUID, segmentID string) (*doc_models.ItineraryDocument, error) {
	var record dm.ItineraryRecord
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND segment_id = ?", tripID, segmentID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var doc doc_models.ItineraryDocument
	if err := json.Unmarshal(record.Document, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveDocument writes the whole document back. Whole-blob upsert, last
// writer wins; there is no version token on the record.
func (r *itineraryRepository) SaveDocument(ctx context.Context, tripID uuid.UUID, segmentID string, doc *doc_models.ItineraryDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	record := dm.ItineraryRecord{
		TripID:    tripID,
		SegmentID: segmentID,
		Document:  datatypes.JSON(raw),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trip_id"}, {Name: "segment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
		}).
		Create(&record).Error
}
