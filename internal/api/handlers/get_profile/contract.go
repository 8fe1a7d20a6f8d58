package get_profile

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

type AccountService interface {
	GetProfile(ctx context.Context, id, email string) (*domain.Account, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
