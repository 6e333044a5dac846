package places_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wander/internal/repositories"
	"wander/internal/services"
)

var Module = fx.Provide(provideLookup, provideCachedImageRepo, provideImageService)

func provideLookup() services.PlaceLookupProvider {
	return services.NewGooglePlaceLookup()
}

func provideCachedImageRepo(db *gorm.DB) repositories.CachedImageRepository {
	return repositories.NewCachedImageRepository(db)
}

func provideImageService(imageRepo repositories.CachedImageRepository) services.ImageServiceInterface {
	return services.NewImageService(imageRepo)
}
