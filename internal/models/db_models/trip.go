package db_models

import "github.com/google/uuid"

type Trip struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"index"`
	Title       string
	Destination string
	Timezone    string `gorm:"default:UTC"` // IANA name, reference zone for past-day checks
	StartDate   string // YYYY-MM-DD
	EndDate     string
	IsUpgraded  bool `gorm:"default:false"` // trip-level upgrade, OR-ed with account subscription

	Members     []TripMember      `gorm:"foreignKey:TripID"`
	Itineraries []ItineraryRecord `gorm:"foreignKey:TripID"`
}
