package get_profile

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

// Handle GET /api/v1/me
// Первое обращение создаёт аккаунт с ролью user
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует ID пользователя")
		return
	}

	account, err := h.service.GetProfile(r.Context(), userID, middleware.GetEmail(r.Context()))
	if err != nil {
		if errors.Is(err, accounts.ErrTimeout) {
			handlers.RespondTimeout(w)
			return
		}
		h.logger.Error("GET /me - Failed to get profile: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewAccountView(account))
}
