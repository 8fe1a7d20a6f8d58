package set_reservation_outcome

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/infra/storage/memory"
	setOutcome "github.com/m04kA/bookit/internal/usecase/set_reservation_outcome"
	"github.com/m04kA/bookit/pkg/logger"
)

type okNotifier struct{}

func (okNotifier) Dispatch(_ context.Context, _ domain.TemplateKind, _ *domain.Reservation, recipients []string) domain.NotificationReport {
	return domain.NotificationReport{Sent: len(recipients)}
}

type nopMetrics struct{}

func (nopMetrics) OutcomeApplied(string) {}

func TestHandle(t *testing.T) {
	ctx := context.Background()
	accounts := memory.NewAccountRepository()
	for _, acc := range []*domain.Account{
		{ID: "admin", Email: "admin@example.com", Type: domain.AccountTypeAdmin},
		{ID: "user", Email: "user@example.com", Type: domain.AccountTypeUser},
	} {
		_, err := accounts.Upsert(ctx, acc)
		require.NoError(t, err)
	}
	repo := memory.NewReservationRepository()
	r, err := repo.CreateInSlot(ctx, &domain.Reservation{
		UserID: "user", Name: "Ann", ContactEmail: "ann@example.com",
		Date: "2024-06-01", Time: "10:00", Status: domain.StatusPending,
	}, true)
	require.NoError(t, err)

	uc := setOutcome.NewUseCase(repo, accounts, okNotifier{}, nopMetrics{}, setOutcome.Options{}, logger.Discard())

	router := mux.NewRouter()
	router.HandleFunc("/reservations/{reservationId}/outcome", NewHandler(uc, logger.Discard()).Handle).Methods(http.MethodPatch)

	patch := func(caller, id, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/reservations/"+id+"/outcome", strings.NewReader(body))
		req = req.WithContext(middleware.WithIdentity(req.Context(), caller, ""))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := patch("admin", r.ID, `{"outcome":"deny"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body handlers.ReservationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Reservation.Confirmed)
	assert.True(t, body.Reservation.NotConfirmed)
	assert.True(t, body.Notification.Delivered)

	assert.Equal(t, http.StatusForbidden, patch("user", r.ID, `{"outcome":"confirm"}`).Code)
	assert.Equal(t, http.StatusNotFound, patch("admin", "missing", `{"outcome":"confirm"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch("admin", r.ID, `{"outcome":"later"}`).Code)
}
