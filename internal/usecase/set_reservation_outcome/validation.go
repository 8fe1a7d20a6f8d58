package set_reservation_outcome

import (
	"fmt"
	"strings"

	"github.com/m04kA/bookit/internal/domain"
)

// validateRequest валидирует входные данные запроса и разбирает решение
func validateRequest(req *Request) (domain.Outcome, error) {
	if strings.TrimSpace(req.CallerID) == "" {
		return "", fmt.Errorf("%w: callerId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ReservationID) == "" {
		return "", fmt.Errorf("%w: reservationId is required", ErrInvalidInput)
	}

	outcome, err := domain.ParseOutcome(req.Outcome)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return outcome, nil
}
