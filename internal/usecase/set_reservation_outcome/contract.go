package set_reservation_outcome

import (
	"context"
	"time"

	"github.com/m04kA/bookit/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error)
}

// AccountRepository интерфейс каталога аккаунтов
type AccountRepository interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
}

// Notifier рассылает уведомление по бронированию
type Notifier interface {
	Dispatch(ctx context.Context, kind domain.TemplateKind, r *domain.Reservation, recipients []string) domain.NotificationReport
}

// MetricsRecorder учитывает решения администраторов
type MetricsRecorder interface {
	OutcomeApplied(outcome string)
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
