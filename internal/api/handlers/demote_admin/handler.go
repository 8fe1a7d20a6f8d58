package demote_admin

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/service/accounts"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "понижать администраторов может только защищённый администратор"
	msgNotFound      = "аккаунт не найден"
	msgProtected     = "защищённый аккаунт нельзя понизить"
	msgNotAdmin      = "аккаунт не является администратором"
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

// Handle DELETE /api/v1/admin/admins/{accountId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["accountId"]

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	account, err := h.service.DemoteAdmin(r.Context(), callerID, accountID)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/admins/{id} - Access denied: caller=%s", callerID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, accounts.ErrAccountNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, accounts.ErrProtectedAccount):
			handlers.RespondConflict(w, msgProtected)
		case errors.Is(err, accounts.ErrNotAdmin):
			handlers.RespondConflict(w, msgNotAdmin)
		case errors.Is(err, accounts.ErrTimeout):
			handlers.RespondTimeout(w)
		default:
			h.logger.Error("DELETE /admin/admins/{id} - Failed: account_id=%s, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/admins/{id} - Demoted: account_id=%s, caller=%s", accountID, callerID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewAccountView(account))
}
