package remove_unavailable_time

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/infra/storage/memory"
	"github.com/m04kA/bookit/internal/service/policy"
	"github.com/m04kA/bookit/pkg/logger"
)

func TestHandle(t *testing.T) {
	ctx := context.Background()
	accounts := memory.NewAccountRepository()
	_, err := accounts.Upsert(ctx, &domain.Account{ID: "admin", Email: "admin@example.com", Type: domain.AccountTypeAdmin})
	require.NoError(t, err)

	repo := memory.NewPolicyRepository()
	_, err = repo.AddUnavailableTime(ctx, domain.Slot{Date: "2024-06-01", Time: "10:00"})
	require.NoError(t, err)

	svc := policy.NewService(repo, accounts, 0, logger.Discard())
	router := mux.NewRouter()
	router.HandleFunc("/booking-policy/unavailable-times/{date}/{time}", NewHandler(svc, logger.Discard()).Handle).Methods(http.MethodDelete)

	del := func(caller, date, tm string) int {
		req := httptest.NewRequest(http.MethodDelete, "/booking-policy/unavailable-times/"+date+"/"+tm, nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), caller, ""))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusForbidden, del("someone", "2024-06-01", "10:00"))
	assert.Equal(t, http.StatusBadRequest, del("admin", "2024-06-01", "ten"))
	assert.Equal(t, http.StatusNoContent, del("admin", "2024-06-01", "10:00"))
	assert.Equal(t, http.StatusNotFound, del("admin", "2024-06-01", "10:00"))

	p, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, p.UnavailableTimes)
}
