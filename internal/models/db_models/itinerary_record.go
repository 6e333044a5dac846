package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ItineraryRecord holds one whole itinerary document as a JSONB blob. A trip
// has one record, or one per segment for multi-city trips (SegmentID empty
// for single-segment trips). Saves are whole-document, last writer wins.
type ItineraryRecord struct {
	BaseModel
	TripID    uuid.UUID      `gorm:"index:idx_trip_segment,unique"`
	SegmentID string         `gorm:"index:idx_trip_segment,unique;default:''"`
	Document  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
