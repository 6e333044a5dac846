package explore_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"wander/internal/repositories"
	"wander/internal/services"
)

var Module = fx.Provide(provideExploreService)

func provideExploreService(
	rdb *redis.Client,
	tripRepo repositories.TripRepository,
	tripMemberRepo repositories.TripMemberRepository,
	quota services.QuotaServiceInterface,
) services.ExploreServiceInterface {
	return services.NewExploreService(rdb, tripRepo, tripMemberRepo, quota)
}
