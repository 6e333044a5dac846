package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wander/internal/repositories"
)

var Module = fx.Provide(provideTripRepo, provideTripMemberRepo)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripMemberRepo(db *gorm.DB) repositories.TripMemberRepository {
	return repositories.NewTripMemberRepository(db)
}
