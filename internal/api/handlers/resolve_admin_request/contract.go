package resolve_admin_request

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/service/accounts/models"
)

type AccountService interface {
	ResolveAdminRequest(ctx context.Context, req *models.ResolveAdminRequest) (*domain.Account, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
