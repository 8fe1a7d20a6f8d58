package emailapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/pkg/logger"
)

func newTestClient(endpoint string) *Client {
	return NewClient(Config{
		Endpoint:  endpoint,
		ServiceID: "service_1",
		PublicKey: "public_1",
		Templates: map[domain.TemplateKind]string{
			domain.TemplateReservationPending:   "tpl_pending",
			domain.TemplateReservationConfirmed: "tpl_confirmed",
			domain.TemplateReservationDenied:    "tpl_denied",
		},
	}, time.Second, logger.Discard())
}

func TestClient_SendBuildsRequest(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	fields := domain.NotificationFields{ToName: "Ann", ReservationDate: "2024-06-01", ReservationTime: "10:00"}
	err := newTestClient(srv.URL).Send(context.Background(), domain.TemplateReservationDenied, "ann@example.com", fields)
	require.NoError(t, err)

	assert.Equal(t, "service_1", got.ServiceID)
	assert.Equal(t, "tpl_denied", got.TemplateID)
	assert.Equal(t, "public_1", got.UserID)
	assert.Equal(t, templateParams{
		ToName:          "Ann",
		ReservationDate: "2024-06-01",
		ReservationTime: "10:00",
		UserEmail:       "ann@example.com",
	}, got.TemplateParams)
}

func TestClient_SendNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid"))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Send(context.Background(), domain.TemplateReservationPending, "a@example.com", domain.NotificationFields{})
	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Contains(t, err.Error(), "template ID is invalid")
}

func TestClient_SendUnknownTemplate(t *testing.T) {
	err := newTestClient("http://127.0.0.1:0").Send(context.Background(), domain.TemplateKind("welcome"), "a@example.com", domain.NotificationFields{})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestClient_SendHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := newTestClient(srv.URL).Send(ctx, domain.TemplateReservationPending, "a@example.com", domain.NotificationFields{})
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestLogSender_NeverFails(t *testing.T) {
	err := NewLogSender(logger.Discard()).Send(context.Background(), domain.TemplateReservationConfirmed, "a@example.com", domain.NotificationFields{})
	assert.NoError(t, err)
}
