package resolve_admin_request

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/service/accounts"
	"github.com/m04kA/bookit/internal/service/accounts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, ожидается {\"accept\": true|false}"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "аккаунт не найден"
	msgNoPendingRequest   = "у аккаунта нет заявки на права администратора"
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

// Handle POST /api/v1/admin/requests/{accountId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["accountId"]

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ResolveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Accept == nil {
		h.logger.Warn("POST /admin/requests/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	account, err := h.service.ResolveAdminRequest(r.Context(), &models.ResolveAdminRequest{
		CallerID:  callerID,
		AccountID: accountID,
		Accept:    *req.Accept,
	})
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrAccessDenied):
			h.logger.Warn("POST /admin/requests/{id} - Access denied: caller=%s", callerID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, accounts.ErrAccountNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, accounts.ErrNoPendingRequest):
			handlers.RespondConflict(w, msgNoPendingRequest)
		case errors.Is(err, accounts.ErrTimeout):
			handlers.RespondTimeout(w)
		default:
			h.logger.Error("POST /admin/requests/{id} - Failed: account_id=%s, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/requests/{id} - Resolved: account_id=%s, accept=%t, caller=%s", accountID, *req.Accept, callerID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewAccountView(account))
}
