package add_unavailable_time

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

type PolicyService interface {
	AddUnavailableTime(ctx context.Context, callerID string, slot domain.Slot) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
