package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"sales-activity-backend/config"
	"sales-activity-backend/internal/apperror"
)

// Locker serializes mutations of one record across API instances. The
// conditional UPDATE in the repositories stays the source of truth; the lock
// only turns a concurrent attempt into a fast InvalidState.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}

type redisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	logger logrus.FieldLogger
}

// NewLocker returns a no-op locker when rdb is nil.
func NewLocker(rdb *redis.Client, ttl time.Duration, logger logrus.FieldLogger) Locker {
	if rdb == nil {
		return noopLocker{}
	}
	return &redisLocker{client: redislock.New(rdb), ttl: ttl, logger: logger}
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lock, err := l.client.Obtain(ctx, "lock:"+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, apperror.InvalidState("another request is already updating this record")
	}
	if err != nil {
		return nil, err
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			config.LogError(l.logger, "usecase", "Lock", "release", key, err)
		}
	}, nil
}
