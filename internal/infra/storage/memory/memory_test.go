package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/bookit/internal/domain"
)

func TestReservationRepository_ExclusiveCreateIsSerialized(t *testing.T) {
	repo := NewReservationRepository()
	ctx := context.Background()

	const workers = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		taken   int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateInSlot(ctx, &domain.Reservation{
				UserID: "u1", Date: "2024-06-01", Time: "10:00", Status: domain.StatusPending,
			}, true)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				success++
			} else if assert.ErrorIs(t, err, domain.ErrSlotTaken) {
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, taken)

	stored, err := repo.ListByDate(ctx, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "10:00", stored[0].Time)
}

func TestReservationRepository_NonExclusiveAllowsSharing(t *testing.T) {
	repo := NewReservationRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.CreateInSlot(ctx, &domain.Reservation{UserID: "u1", Date: "2024-06-01", Time: "10:00"}, false)
		require.NoError(t, err)
	}

	counts, err := repo.CountByUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts["u1"])
}

func TestReservationRepository_SetStatus(t *testing.T) {
	repo := NewReservationRepository()
	ctx := context.Background()

	created, err := repo.CreateInSlot(ctx, &domain.Reservation{UserID: "u1", Date: "2024-06-01", Time: "10:00", Status: domain.StatusPending}, true)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := repo.SetStatus(ctx, created.ID, domain.StatusDenied)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDenied, updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = repo.SetStatus(ctx, "missing", domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestPolicyRepository_UnavailableTimesAreASet(t *testing.T) {
	repo := NewPolicyRepository()
	ctx := context.Background()
	slot := domain.Slot{Date: "2024-07-04", Time: "09:00"}

	added, err := repo.AddUnavailableTime(ctx, slot)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddUnavailableTime(ctx, slot)
	require.NoError(t, err)
	assert.False(t, added)

	policy, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{slot}, policy.UnavailableTimes)

	require.NoError(t, repo.RemoveUnavailableTime(ctx, slot))
	assert.ErrorIs(t, repo.RemoveUnavailableTime(ctx, slot), domain.ErrUnavailableTimeNotFound)
}

func TestPolicyRepository_DefaultsOnFirstRead(t *testing.T) {
	policy, err := NewPolicyRepository().Get(context.Background())
	require.NoError(t, err)

	assert.False(t, policy.AutoConfirm)
	assert.False(t, policy.AllowMultipleReservations)
	assert.Empty(t, policy.UnavailableTimes)
}

func TestAccountRepository_EnsureKeepsExisting(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &domain.Account{ID: "root", Email: "root@example.com", Type: domain.AccountTypeAdmin, Protected: true})
	require.NoError(t, err)

	acc, err := repo.Ensure(ctx, &domain.Account{ID: "root", Email: "other@example.com", Type: domain.AccountTypeUser})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountTypeAdmin, acc.Type)
	assert.True(t, acc.Protected)

	admins, err := repo.ListByType(ctx, domain.AccountTypeAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}
