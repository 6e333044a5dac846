package db_models

import "github.com/google/uuid"

// TripMember is both the membership record and the quota counter row for a
// trip+account pair. Counter columns only ever move through atomic SQL
// increments; see TripMemberRepository.
type TripMember struct {
	BaseModel
	TripID    uuid.UUID `gorm:"index:idx_trip_account,unique"`
	AccountID uuid.UUID `gorm:"index:idx_trip_account,unique"`
	Role      string    `gorm:"default:member"` // owner | member

	SwipeCount     int `gorm:"default:0"`
	ChangeCount    int `gorm:"default:0"`
	SearchAddCount int `gorm:"default:0"`
}
