package resolve_admin_request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/infra/storage/memory"
	"github.com/m04kA/bookit/internal/service/accounts"
	"github.com/m04kA/bookit/pkg/logger"
)

func TestHandle(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()
	for _, acc := range []*domain.Account{
		{ID: "admin", Email: "admin@example.com", Type: domain.AccountTypeAdmin},
		{ID: "user", Email: "user@example.com", Type: domain.AccountTypeUser, RequestAdminAccess: true},
	} {
		_, err := repo.Upsert(ctx, acc)
		require.NoError(t, err)
	}

	svc := accounts.NewService(repo, memory.NewReservationRepository(), 0, logger.Discard())
	router := mux.NewRouter()
	router.HandleFunc("/admin/requests/{accountId}", NewHandler(svc, logger.Discard()).Handle).Methods(http.MethodPost)

	resolve := func(caller, id, body string) int {
		req := httptest.NewRequest(http.MethodPost, "/admin/requests/"+id, strings.NewReader(body))
		req = req.WithContext(middleware.WithIdentity(req.Context(), caller, ""))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusBadRequest, resolve("admin", "user", `{}`))
	assert.Equal(t, http.StatusForbidden, resolve("user", "user", `{"accept":true}`))
	assert.Equal(t, http.StatusNotFound, resolve("admin", "ghost", `{"accept":true}`))
	assert.Equal(t, http.StatusOK, resolve("admin", "user", `{"accept":true}`))
	assert.Equal(t, http.StatusConflict, resolve("admin", "user", `{"accept":false}`))

	stored, err := repo.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin())
}
