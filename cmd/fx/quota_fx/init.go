package quota_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wander/internal/repositories"
	"wander/internal/services"
)

var Module = fx.Provide(provideSubscriptionRepo, provideQuotaService)

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideQuotaService(
	subscriptionRepo repositories.SubscriptionRepository,
	tripMemberRepo repositories.TripMemberRepository,
	tripRepo repositories.TripRepository,
) services.QuotaServiceInterface {
	return services.NewQuotaService(subscriptionRepo, tripMemberRepo, tripRepo)
}
