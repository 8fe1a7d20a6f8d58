package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/bookit/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CreateInSlot(ctx context.Context, r *domain.Reservation, exclusive bool) (*domain.Reservation, error)
}

// PolicyRepository интерфейс репозитория политики бронирования
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.BookingPolicy, error)
}

// AccountRepository интерфейс каталога аккаунтов
type AccountRepository interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
	ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error)
}

// Notifier рассылает уведомление по бронированию
type Notifier interface {
	Dispatch(ctx context.Context, kind domain.TemplateKind, r *domain.Reservation, recipients []string) domain.NotificationReport
}

// MetricsRecorder учитывает созданные бронирования
type MetricsRecorder interface {
	ReservationCreated(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Options настройки use case
type Options struct {
	// CallTimeout ограничивает каждый вызов хранилища; 0 отключает ограничение
	CallTimeout time.Duration
}
