package cache

import (
	"fmt"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore creates the idempotency store named by cache.backend.
// The redis backend falls back to the in-memory store with a warning when
// Redis is unreachable; losing dedupe beats refusing to start a terminal.
func NewIdempotencyStore(cfg *config.Config, logger *zap.Logger) (shared.IdempotencyStore, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return NewInMemoryIdempotencyStore(), nil
	case "redis":
		store, err := NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory idempotency store. "+
				"Duplicate notifications are possible across instances.",
				zap.Error(err),
			)
			return NewInMemoryIdempotencyStore(), nil
		}
		logger.Info("Using Redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
