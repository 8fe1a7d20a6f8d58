package update_profile

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/service/accounts/models"
)

type AccountService interface {
	UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*domain.Account, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
