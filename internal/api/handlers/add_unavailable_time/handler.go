package add_unavailable_time

import (
	"errors"
	"net/http"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/service/policy"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректный слот, ожидается date=YYYY-MM-DD и time=HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-policy/unavailable-times
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddUnavailableTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-policy/unavailable-times - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot := domain.Slot{Date: req.Date, Time: req.Time}
	added, err := h.service.AddUnavailableTime(r.Context(), callerID, slot)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, policy.ErrAccessDenied):
			h.logger.Warn("POST /booking-policy/unavailable-times - Access denied: caller=%s", callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, policy.ErrTimeout):
			handlers.RespondTimeout(w)

		default:
			h.logger.Error("POST /booking-policy/unavailable-times - Failed: slot=%s, error=%v", slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	h.logger.Info("POST /booking-policy/unavailable-times - slot=%s added=%t", slot, added)
	handlers.RespondJSON(w, status, AddUnavailableTimeResponse{Date: slot.Date, Time: slot.Time, Added: added})
}
