package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/api/middleware"
	createReservation "github.com/m04kA/bookit/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgAccountNotFound    = "профиль не найден, откройте /me перед бронированием"
	msgSlotBlackedOut     = "выбранное время недоступно для бронирования"
	msgSlotAlreadyBooked  = "выбранное время уже занято"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrAccountNotFound):
			h.logger.Warn("POST /reservations - Account not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, createReservation.ErrSlotBlackedOut):
			h.logger.Warn("POST /reservations - Slot blacked out: user_id=%s, date=%s, time=%s", userID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotBlackedOut)

		case errors.Is(err, createReservation.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /reservations - Slot already booked: user_id=%s, date=%s, time=%s", userID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createReservation.ErrTimeout):
			h.logger.Error("POST /reservations - Store timeout: user_id=%s, error=%v", userID, err)
			handlers.RespondTimeout(w)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Notification.Delivered() {
		h.logger.Warn("POST /reservations - Notifications incomplete: reservation_id=%s, error=%v",
			result.Reservation.ID, result.Notification.Err)
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%s, user_id=%s, status=%s",
		result.Reservation.ID, userID, result.Reservation.Status)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewReservationResult(result.Reservation, result.Notification))
}
