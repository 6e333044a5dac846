package redis_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"wander/internal/infra"
)

var Module = fx.Provide(
	provideRedis)

func provideRedis() *redis.Client {
	return infra.InitRedis()
}
