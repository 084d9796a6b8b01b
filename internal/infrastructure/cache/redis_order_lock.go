// Package cache provides the per-order fulfillment locks.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/coregenion/holo-gateway/internal/application/holo"
	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

const orderLockKeyPrefix = "holo:fulfill:lock:"

// defaultLockTTL bounds how long a crashed fulfillment can hold the lock
const defaultLockTTL = 2 * time.Minute

// RedisOrderLocker implements holo.OrderLocker using Redis SETNX.
// Suitable for distributed deployments where multiple instances may
// receive fulfillment calls for the same order.
type RedisOrderLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisOrderLocker creates a new Redis-backed order locker
func NewRedisOrderLocker(cfg RedisConfig) (*RedisOrderLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisOrderLocker{
		client: client,
		ttl:    defaultLockTTL,
	}, nil
}

// NewRedisOrderLockerWithClient creates a locker with an existing Redis client
func NewRedisOrderLockerWithClient(client *redis.Client, ttl time.Duration) *RedisOrderLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisOrderLocker{
		client: client,
		ttl:    ttl,
	}
}

// Acquire takes the lock for an order. It returns shared.ErrConcurrencyConflict
// when another fulfillment currently holds it.
func (l *RedisOrderLocker) Acquire(ctx context.Context, orderID string) (func(), error) {
	key := orderLockKeyPrefix + orderID

	ok, err := l.client.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire order lock: %w", err)
	}
	if !ok {
		return nil, shared.ErrConcurrencyConflict
	}

	release := func() {
		// Release is best effort; the TTL reclaims the lock otherwise
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		l.client.Del(releaseCtx, key)
	}
	return release, nil
}

// Close closes the Redis client
func (l *RedisOrderLocker) Close() error {
	return l.client.Close()
}

// Ensure RedisOrderLocker implements holo.OrderLocker
var _ holo.OrderLocker = (*RedisOrderLocker)(nil)
