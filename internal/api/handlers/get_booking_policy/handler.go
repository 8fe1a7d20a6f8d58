package get_booking_policy

import (
	"errors"
	"net/http"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/service/policy"
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

// Handle GET /api/v1/booking-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, policy.ErrTimeout) {
			handlers.RespondTimeout(w)
			return
		}
		h.logger.Error("GET /booking-policy - Failed to get policy: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewPolicyView(result))
}
