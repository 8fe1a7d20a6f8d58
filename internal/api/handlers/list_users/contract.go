package list_users

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

type AccountService interface {
	ListUsers(ctx context.Context, callerID string) ([]*domain.AccountSummary, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
