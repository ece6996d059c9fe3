package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"sales-activity-backend/config"
	"sales-activity-backend/internal/access"
)

// cachedDirectory serves FindIDsByManager from redis, falling back to the
// database on a miss or a redis failure.
type cachedDirectory struct {
	next   access.Directory
	rdb    *redis.Client
	ttl    time.Duration
	logger logrus.FieldLogger
}

// NewCachedDirectory returns next unchanged when rdb is nil or ttl is not
// positive. Entries are never invalidated early, so ttl bounds how long a
// manager reassignment can go unnoticed.
func NewCachedDirectory(next access.Directory, rdb *redis.Client, ttl time.Duration, logger logrus.FieldLogger) access.Directory {
	if rdb == nil || ttl <= 0 {
		return next
	}
	return &cachedDirectory{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func subordinatesKey(managerID uint) string {
	return fmt.Sprintf("directory:subordinates:%d", managerID)
}

func (c *cachedDirectory) FindIDsByManager(ctx context.Context, managerID uint) ([]uint, error) {
	key := subordinatesKey(managerID)

	val, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var ids []uint
		if jsonErr := json.Unmarshal([]byte(val), &ids); jsonErr == nil {
			return ids, nil
		}
	case !errors.Is(err, redis.Nil):
		config.LogError(c.logger, "repository", "FindIDsByManager", "redis get", key, err)
	}

	ids, err := c.next.FindIDsByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(ids)
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		config.LogError(c.logger, "repository", "FindIDsByManager", "redis set", key, err)
	}
	return ids, nil
}

// CompanyIDOf is not cached.
func (c *cachedDirectory) CompanyIDOf(ctx context.Context, userID uint) (uint, error) {
	return c.next.CompanyIDOf(ctx, userID)
}
