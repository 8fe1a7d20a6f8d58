package get_user_reservations

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/service/reservations/models"
)

type ReservationService interface {
	ListForUser(ctx context.Context, req *models.ListUserReservationsRequest) ([]*domain.Reservation, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
