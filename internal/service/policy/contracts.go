package policy

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

// PolicyRepository интерфейс хранилища политики бронирования
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.BookingPolicy, error)
	Patch(ctx context.Context, patch domain.PolicyPatch) (*domain.BookingPolicy, error)
	AddUnavailableTime(ctx context.Context, slot domain.Slot) (bool, error)
	RemoveUnavailableTime(ctx context.Context, slot domain.Slot) error
}

// AccountRepository интерфейс каталога аккаунтов
type AccountRepository interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
