package list_admins

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

type AccountService interface {
	ListAdmins(ctx context.Context, callerID string) ([]*domain.Account, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
