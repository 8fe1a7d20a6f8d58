package get_user_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/service/reservations"
	"github.com/m04kA/bookit/internal/service/reservations/models"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidPartition = "partition должен быть all, confirmed или unconfirmed"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/reservations?partition=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	list, err := h.service.ListForUser(r.Context(), &models.ListUserReservationsRequest{
		UserID:    userID,
		Partition: r.URL.Query().Get("partition"),
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPartition)
		case errors.Is(err, reservations.ErrTimeout):
			handlers.RespondTimeout(w)
		default:
			h.logger.Error("GET /me/reservations - Failed to list reservations: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewReservationViews(list))
}
