package policy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/infra/storage/memory"
	"github.com/m04kA/bookit/pkg/logger"
)

func newService(t *testing.T) *Service {
	t.Helper()
	accounts := memory.NewAccountRepository()
	for _, acc := range []*domain.Account{
		{ID: "admin", Email: "admin@example.com", Type: domain.AccountTypeAdmin},
		{ID: "user", Email: "user@example.com", Type: domain.AccountTypeUser},
	} {
		_, err := accounts.Upsert(context.Background(), acc)
		require.NoError(t, err)
	}
	return NewService(memory.NewPolicyRepository(), accounts, time.Second, logger.Discard())
}

func TestGet_DefaultsAreCreatedOnFirstRead(t *testing.T) {
	svc := newService(t)

	policy, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, policy.AutoConfirm)
	assert.False(t, policy.AllowMultipleReservations)
	assert.Empty(t, policy.UnavailableTimes)
}

func TestPatch_MergesFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	yes := true

	_, err := svc.Patch(ctx, "admin", domain.PolicyPatch{AllowMultipleReservations: &yes})
	require.NoError(t, err)

	policy, err := svc.Patch(ctx, "admin", domain.PolicyPatch{AutoConfirm: &yes})
	require.NoError(t, err)
	assert.True(t, policy.AutoConfirm)
	assert.True(t, policy.AllowMultipleReservations)

	policy, err = svc.Patch(ctx, "admin", domain.PolicyPatch{})
	require.NoError(t, err)
	assert.True(t, policy.AutoConfirm)
}

func TestMutations_AdminOnly(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	yes := true
	slot := domain.Slot{Date: "2024-06-01", Time: "10:00"}

	for _, caller := range []string{"user", "ghost"} {
		_, err := svc.Patch(ctx, caller, domain.PolicyPatch{AutoConfirm: &yes})
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = svc.AddUnavailableTime(ctx, caller, slot)
		assert.ErrorIs(t, err, ErrAccessDenied)

		err = svc.RemoveUnavailableTime(ctx, caller, slot)
		assert.ErrorIs(t, err, ErrAccessDenied)
	}

	policy, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.False(t, policy.AutoConfirm)
	assert.Empty(t, policy.UnavailableTimes)
}

func TestUnavailableTimes_SetSemantics(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	first := domain.Slot{Date: "2024-06-01", Time: "10:00"}
	second := domain.Slot{Date: "2024-06-01", Time: "11:00"}

	added, err := svc.AddUnavailableTime(ctx, "admin", first)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddUnavailableTime(ctx, "admin", second)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddUnavailableTime(ctx, "admin", first)
	require.NoError(t, err)
	assert.False(t, added)

	policy, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{first, second}, policy.UnavailableTimes)

	require.NoError(t, svc.RemoveUnavailableTime(ctx, "admin", first))
	err = svc.RemoveUnavailableTime(ctx, "admin", first)
	assert.ErrorIs(t, err, ErrUnavailableTimeNotFound)

	policy, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{second}, policy.UnavailableTimes)
}

func TestUnavailableTimes_InvalidSlot(t *testing.T) {
	svc := newService(t)

	_, err := svc.AddUnavailableTime(context.Background(), "admin", domain.Slot{Date: "tomorrow", Time: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.RemoveUnavailableTime(context.Background(), "admin", domain.Slot{Date: "2024-06-01", Time: "noon"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
