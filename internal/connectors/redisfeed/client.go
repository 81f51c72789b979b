package redisfeed

import (
	"github.com/redis/go-redis/v9"
	"github.com/you/skin-arb/internal/config"
)

func newClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
	})
}
