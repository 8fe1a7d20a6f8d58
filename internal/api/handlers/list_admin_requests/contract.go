package list_admin_requests

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

type AccountService interface {
	ListAdminRequests(ctx context.Context, callerID string) ([]*domain.Account, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
