package update_booking_policy

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

type PolicyService interface {
	Patch(ctx context.Context, callerID string, patch domain.PolicyPatch) (*domain.BookingPolicy, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
