package remove_unavailable_time

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

type PolicyService interface {
	RemoveUnavailableTime(ctx context.Context, callerID string, slot domain.Slot) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
