package demote_admin

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

type AccountService interface {
	DemoteAdmin(ctx context.Context, callerID, accountID string) (*domain.Account, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
