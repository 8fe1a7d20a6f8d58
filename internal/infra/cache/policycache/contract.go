package policycache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/bookit/internal/domain"
)

// Repository хранилище политики, поверх которого работает кэш
type Repository interface {
	Get(ctx context.Context) (*domain.BookingPolicy, error)
	Patch(ctx context.Context, patch domain.PolicyPatch) (*domain.BookingPolicy, error)
	AddUnavailableTime(ctx context.Context, slot domain.Slot) (bool, error)
	RemoveUnavailableTime(ctx context.Context, slot domain.Slot) error
}

// Client подмножество команд Redis (реализуется *redis.Client)
type Client interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
