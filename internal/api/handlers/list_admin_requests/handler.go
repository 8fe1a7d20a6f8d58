package list_admin_requests

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

// Handle GET /api/v1/admin/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует ID пользователя")
		return
	}

	list, err := h.service.ListAdminRequests(r.Context(), callerID)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrAccessDenied):
			h.logger.Warn("GET /admin/requests - Access denied: caller=%s", callerID)
			handlers.RespondForbidden(w, "доступ запрещен")
		case errors.Is(err, accounts.ErrTimeout):
			handlers.RespondTimeout(w)
		default:
			h.logger.Error("GET /admin/requests - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewAccountViews(list))
}
