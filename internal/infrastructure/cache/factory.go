package cache

import (
	"fmt"

	"github.com/coregenion/holo-gateway/internal/application/holo"
	"github.com/coregenion/holo-gateway/internal/infrastructure/config"
	"go.uber.org/zap"
)

// OrderLockerFactory creates order lockers based on configuration
type OrderLockerFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// OrderLockerFactoryOption is a functional option for configuring the factory
type OrderLockerFactoryOption func(*OrderLockerFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) OrderLockerFactoryOption {
	return func(f *OrderLockerFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory locker
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) OrderLockerFactoryOption {
	return func(f *OrderLockerFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewOrderLockerFactory creates a new factory
func NewOrderLockerFactory(cfg config.RedisConfig, opts ...OrderLockerFactoryOption) *OrderLockerFactory {
	f := &OrderLockerFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateLocker creates an order locker. When Redis is enabled it connects
// there; on failure it falls back to the in-memory locker unless fallback
// is disabled.
func (f *OrderLockerFactory) CreateLocker() (holo.OrderLocker, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory fulfillment lock")
		return NewInMemoryOrderLocker(), nil
	}

	locker, err := NewRedisOrderLocker(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("using Redis fulfillment lock")
		return locker, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for the fulfillment lock but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory fulfillment lock. "+
		"Concurrent fulfillments are only serialized within this process.",
		zap.Error(err),
	)
	return NewInMemoryOrderLocker(), nil
}
