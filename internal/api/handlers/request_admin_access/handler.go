package request_admin_access

import (
	"errors"
	"net/http"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/service/accounts"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "профиль не найден"
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

// Handle POST /api/v1/me/admin-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	account, err := h.service.RequestAdminAccess(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrAccountNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, accounts.ErrTimeout):
			handlers.RespondTimeout(w)
		default:
			h.logger.Error("POST /me/admin-request - Failed: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /me/admin-request - user_id=%s pending=%t", userID, account.RequestAdminAccess)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewAccountView(account))
}
