package set_reservation_outcome

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/infra/storage/memory"
	"github.com/m04kA/bookit/internal/service/notifications"
	"github.com/m04kA/bookit/pkg/logger"
)

type dispatched struct {
	kind       domain.TemplateKind
	recipients []string
}

type fakeNotifier struct {
	calls []dispatched
}

func (f *fakeNotifier) Dispatch(_ context.Context, kind domain.TemplateKind, _ *domain.Reservation, recipients []string) domain.NotificationReport {
	f.calls = append(f.calls, dispatched{kind: kind, recipients: recipients})
	return domain.NotificationReport{Sent: len(recipients)}
}

type fakeMetrics struct {
	outcomes []string
}

func (f *fakeMetrics) OutcomeApplied(outcome string) {
	f.outcomes = append(f.outcomes, outcome)
}

// blockingReservations не отвечает на SetStatus, пока не истечёт контекст вызова
type blockingReservations struct {
	*memory.ReservationRepository
}

func (b blockingReservations) SetStatus(ctx context.Context, _ string, _ domain.ReservationStatus) (*domain.Reservation, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type fixture struct {
	uc           *UseCase
	reservations *memory.ReservationRepository
	accounts     *memory.AccountRepository
	notifier     *fakeNotifier
	metrics      *fakeMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	accounts := memory.NewAccountRepository()
	for _, acc := range []*domain.Account{
		{ID: "admin", Email: "admin@example.com", Type: domain.AccountTypeAdmin},
		{ID: "user", Email: "user@example.com", Type: domain.AccountTypeUser},
	} {
		_, err := accounts.Upsert(ctx, acc)
		require.NoError(t, err)
	}

	f := &fixture{
		reservations: memory.NewReservationRepository(),
		notifier:     &fakeNotifier{},
		metrics:      &fakeMetrics{},
	}
	f.accounts = accounts
	f.uc = NewUseCase(f.reservations, accounts, f.notifier, f.metrics, Options{}, logger.Discard())
	return f
}

func (f *fixture) seed(t *testing.T, r *domain.Reservation) *domain.Reservation {
	t.Helper()
	created, err := f.reservations.CreateInSlot(context.Background(), r, false)
	require.NoError(t, err)
	return created
}

func completeReservation() *domain.Reservation {
	return &domain.Reservation{
		UserID: "user", Name: "Ann", ContactEmail: "ann@example.com",
		Date: "2024-06-01", Time: "10:00", Status: domain.StatusPending,
	}
}

func TestExecute_ConfirmThenDeny(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.seed(t, completeReservation())

	resp, err := f.uc.Execute(ctx, &Request{CallerID: "admin", ReservationID: r.ID, Outcome: "confirm"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)

	resp, err = f.uc.Execute(ctx, &Request{CallerID: "admin", ReservationID: r.ID, Outcome: "deny"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDenied, resp.Reservation.Status)
	assert.False(t, resp.Reservation.IsConfirmed())
	assert.True(t, resp.Reservation.IsDenied())

	stored, err := f.reservations.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDenied, stored.Status)

	require.Len(t, f.notifier.calls, 2)
	assert.Equal(t, domain.TemplateReservationConfirmed, f.notifier.calls[0].kind)
	assert.Equal(t, domain.TemplateReservationDenied, f.notifier.calls[1].kind)
	assert.Equal(t, []string{"ann@example.com"}, f.notifier.calls[1].recipients)
	assert.Equal(t, []string{"confirm", "deny"}, f.metrics.outcomes)
}

func TestExecute_RepeatIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.seed(t, completeReservation())

	_, err := f.uc.Execute(ctx, &Request{CallerID: "admin", ReservationID: r.ID, Outcome: "confirm"})
	require.NoError(t, err)
	resp, err := f.uc.Execute(ctx, &Request{CallerID: "admin", ReservationID: r.ID, Outcome: "confirm"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
	assert.True(t, resp.Notification.Delivered())
	assert.Len(t, f.notifier.calls, 1)
}

func TestExecute_NonAdminDenied(t *testing.T) {
	f := newFixture(t)
	r := f.seed(t, completeReservation())

	for _, caller := range []string{"user", "stranger"} {
		_, err := f.uc.Execute(context.Background(), &Request{CallerID: caller, ReservationID: r.ID, Outcome: "confirm"})
		assert.ErrorIs(t, err, ErrAccessDenied, caller)
	}

	stored, err := f.reservations.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{CallerID: "admin", ReservationID: "missing", Outcome: "deny"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_InvalidOutcome(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{CallerID: "admin", ReservationID: "x", Outcome: "maybe"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_IncompleteRecordKeepsStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := completeReservation()
	r.ContactEmail = ""
	r = f.seed(t, r)

	resp, err := f.uc.Execute(ctx, &Request{CallerID: "admin", ReservationID: r.ID, Outcome: "confirm"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
	assert.ErrorIs(t, resp.Notification.Err, notifications.ErrIncompleteRecord)
	assert.Empty(t, f.notifier.calls)

	stored, err := f.reservations.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}

func TestExecute_SlowStoreTimesOut(t *testing.T) {
	f := newFixture(t)
	r := f.seed(t, completeReservation())
	uc := NewUseCase(
		blockingReservations{f.reservations}, f.accounts, f.notifier, f.metrics,
		Options{CallTimeout: 20 * time.Millisecond}, logger.Discard(),
	)

	_, err := uc.Execute(context.Background(), &Request{CallerID: "admin", ReservationID: r.ID, Outcome: "confirm"})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, f.notifier.calls)
	assert.Empty(t, f.metrics.outcomes)
}
