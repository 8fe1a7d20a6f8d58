package accounts

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

// AccountRepository интерфейс каталога аккаунтов
type AccountRepository interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
	Ensure(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Upsert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	ListAll(ctx context.Context) ([]*domain.Account, error)
	ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error)
	ListRequestingAdmin(ctx context.Context) ([]*domain.Account, error)
	SetRole(ctx context.Context, id string, accountType domain.AccountType) error
	SetRequestAdminAccess(ctx context.Context, id string, requested bool) error
	CompleteAdminRequest(ctx context.Context, id string, grant bool) error
	UpdateProfile(ctx context.Context, id string, name, phone string) (*domain.Account, error)
}

// ReservationCounter считает бронирования по пользователям
type ReservationCounter interface {
	CountByUser(ctx context.Context) (map[string]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
