package get_booking_policy

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

type PolicyService interface {
	Get(ctx context.Context) (*domain.BookingPolicy, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
