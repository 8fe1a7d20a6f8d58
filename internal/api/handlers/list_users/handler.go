package list_users

import (
	"errors"
	"net/http"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/service/accounts"
)

type Handler struct {
	service AccountService
	logger  Logger
}

func NewHandler(service AccountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/users
// Каждый аккаунт возвращается с общим количеством бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует ID пользователя")
		return
	}

	list, err := h.service.ListUsers(r.Context(), callerID)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrAccessDenied):
			h.logger.Warn("GET /admin/users - Access denied: caller=%s", callerID)
			handlers.RespondForbidden(w, "доступ запрещен")
		case errors.Is(err, accounts.ErrTimeout):
			handlers.RespondTimeout(w)
		default:
			h.logger.Error("GET /admin/users - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewAccountSummaryViews(list))
}
