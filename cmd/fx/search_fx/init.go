package search_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wander/internal/repositories"
	"wander/internal/services"
	"wander/pkg/utils"
)

var Module = fx.Provide(provideEmbeddingRepo, provideEmbeddingClient, provideSearchService)

func provideEmbeddingRepo(db *gorm.DB) repositories.PlaceEmbeddingRepository {
	return repositories.NewPlaceEmbeddingRepository(db)
}

func provideEmbeddingClient() utils.EmbeddingClientInterface {
	return utils.NewOpenAIEmbeddingClient()
}

func provideSearchService(
	embeddingRepo repositories.PlaceEmbeddingRepository,
	aiClient utils.EmbeddingClientInterface,
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	tripMemberRepo repositories.TripMemberRepository,
	quota services.QuotaServiceInterface,
	allocator services.AllocatorServiceInterface,
	lookup services.PlaceLookupProvider,
	images services.ImageServiceInterface,
) services.SearchServiceInterface {
	return services.NewSearchService(embeddingRepo, aiClient, tripRepo, itineraryRepo, tripMemberRepo, quota, allocator, lookup, images)
}
