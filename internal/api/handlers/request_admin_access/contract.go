package request_admin_access

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

type AccountService interface {
	RequestAdminAccess(ctx context.Context, id string) (*domain.Account, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
