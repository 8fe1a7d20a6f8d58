package set_reservation_outcome

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/api/middleware"
	setOutcome "github.com/m04kA/bookit/internal/usecase/set_reservation_outcome"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidOutcome     = "решение должно быть confirm или deny"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "недопустимая смена статуса"
)

type Handler struct {
	useCase SetOutcomeUseCase
	logger  Logger
}

func NewHandler(useCase SetOutcomeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/outcome
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetOutcomeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/outcome - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &setOutcome.Request{
		CallerID:      callerID,
		ReservationID: reservationID,
		Outcome:       req.Outcome,
	})
	if err != nil {
		switch {
		case errors.Is(err, setOutcome.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidOutcome)

		case errors.Is(err, setOutcome.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/outcome - Access denied: reservation_id=%s, caller=%s", reservationID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, setOutcome.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, setOutcome.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, setOutcome.ErrTimeout):
			h.logger.Error("PATCH /reservations/{id}/outcome - Store timeout: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondTimeout(w)

		default:
			h.logger.Error("PATCH /reservations/{id}/outcome - Failed: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/outcome - Outcome applied: reservation_id=%s, status=%s, delivered=%t",
		reservationID, result.Reservation.Status, result.Notification.Delivered())
	handlers.RespondJSON(w, http.StatusOK, handlers.NewReservationResult(result.Reservation, result.Notification))
}
