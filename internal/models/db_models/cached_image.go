package db_models

import "github.com/google/uuid"

// CachedImage records the public URL resolved for a trip/place pair so the
// provider fallback chain only runs once per place.
type CachedImage struct {
	BaseModel
	TripID    uuid.UUID `gorm:"index:idx_trip_place,unique"`
	PlaceID   string    `gorm:"index:idx_trip_place,unique"`
	PublicURL string
	Source    string // payload | photo_ref | map_thumbnail
}
