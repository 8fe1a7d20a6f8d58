package remove_unavailable_time

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/service/policy"
)

const (
	msgInvalidSlot   = "некорректный слот, ожидается /{YYYY-MM-DD}/{HH:MM}"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgNotFound      = "слот не найден среди недоступных"
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

// Handle DELETE /api/v1/booking-policy/unavailable-times/{date}/{time}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	slot := domain.Slot{Date: vars["date"], Time: vars["time"]}

	err := h.service.RemoveUnavailableTime(r.Context(), callerID, slot)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, policy.ErrAccessDenied):
			h.logger.Warn("DELETE /booking-policy/unavailable-times - Access denied: caller=%s", callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, policy.ErrUnavailableTimeNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, policy.ErrTimeout):
			handlers.RespondTimeout(w)

		default:
			h.logger.Error("DELETE /booking-policy/unavailable-times - Failed: slot=%s, error=%v", slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /booking-policy/unavailable-times - slot=%s removed by caller=%s", slot, callerID)
	w.WriteHeader(http.StatusNoContent)
}
