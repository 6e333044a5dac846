package itinerary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wander/internal/repositories"
	"wander/internal/services"
)

var Module = fx.Provide(
	provideItineraryRepo,
	provideAllocatorService,
	provideActivityService,
	provideItineraryService)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideAllocatorService(
	lookup services.PlaceLookupProvider,
	images services.ImageServiceInterface,
) services.AllocatorServiceInterface {
	return services.NewAllocatorService(lookup, images)
}

func provideActivityService(
	lookup services.PlaceLookupProvider,
	images services.ImageServiceInterface,
	quota services.QuotaServiceInterface,
) services.ActivityServiceInterface {
	return services.NewActivityService(lookup, images, quota)
}

func provideItineraryService(
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	tripMemberRepo repositories.TripMemberRepository,
	quota services.QuotaServiceInterface,
	activity services.ActivityServiceInterface,
	allocator services.AllocatorServiceInterface,
	explore services.ExploreServiceInterface,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(tripRepo, itineraryRepo, tripMemberRepo, quota, activity, allocator, explore)
}
