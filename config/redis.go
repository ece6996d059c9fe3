package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis returns nil when no address is configured; callers fall back to
// uncached lookups and in-process transitions.
func ConnectRedis(ctx context.Context, cfg *Config, logger *logrus.Logger) *redis.Client {
	if cfg.RedisAddress == "" {
		logger.Info("REDIS_ADDRESS not set, running without redis")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: GetEnv("REDIS_PASSWORD", ""),
		DB:       GetEnvAsInt("REDIS_DB", 0),
		PoolSize: 20,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		LogError(logger, "config", "ConnectRedis", "ping", cfg.RedisAddress, err)
		_ = rdb.Close()
		return nil
	}

	logger.WithField("addr", cfg.RedisAddress).Info("connected to redis")
	return rdb
}
