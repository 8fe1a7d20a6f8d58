package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/infra/storage/memory"
	"github.com/m04kA/bookit/internal/service/accounts/models"
	"github.com/m04kA/bookit/pkg/logger"
)

type fixture struct {
	svc          *Service
	accounts     *memory.AccountRepository
	reservations *memory.ReservationRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		accounts:     memory.NewAccountRepository(),
		reservations: memory.NewReservationRepository(),
	}
	f.svc = NewService(f.accounts, f.reservations, 0, logger.Discard())

	ctx := context.Background()
	for _, acc := range []*domain.Account{
		{ID: "root", Email: "root@example.com", Type: domain.AccountTypeAdmin, Protected: true},
		{ID: "admin", Email: "admin@example.com", Type: domain.AccountTypeAdmin},
		{ID: "user", Email: "user@example.com", Type: domain.AccountTypeUser},
	} {
		_, err := f.accounts.Upsert(ctx, acc)
		require.NoError(t, err)
	}
	return f
}

func TestGetProfile_CreatesOnFirstRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc, err := f.svc.GetProfile(ctx, "newcomer", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountTypeUser, acc.Type)
	assert.Equal(t, "new@example.com", acc.Email)

	acc, err = f.svc.GetProfile(ctx, "admin", "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountTypeAdmin, acc.Type, "existing account is not overwritten")
	assert.Equal(t, "admin@example.com", acc.Email)

	_, err = f.svc.GetProfile(ctx, "", "x@example.com")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc, err := f.svc.UpdateProfile(ctx, &models.UpdateProfileRequest{AccountID: "user", Name: " Ann ", Phone: "+1 555"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", acc.Name)
	assert.Equal(t, "+1 555", acc.Phone)

	_, err = f.svc.UpdateProfile(ctx, &models.UpdateProfileRequest{AccountID: "ghost", Name: "x"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAdminRequest_AcceptPromotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc, err := f.svc.RequestAdminAccess(ctx, "user")
	require.NoError(t, err)
	assert.True(t, acc.RequestAdminAccess)

	pending, err := f.svc.ListAdminRequests(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "user", pending[0].ID)

	acc, err = f.svc.ResolveAdminRequest(ctx, &models.ResolveAdminRequest{CallerID: "admin", AccountID: "user", Accept: true})
	require.NoError(t, err)
	assert.True(t, acc.IsAdmin())
	assert.False(t, acc.RequestAdminAccess)

	stored, err := f.accounts.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin())
	assert.False(t, stored.RequestAdminAccess)
}

func TestAdminRequest_RejectClearsFlagOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RequestAdminAccess(ctx, "user")
	require.NoError(t, err)

	acc, err := f.svc.ResolveAdminRequest(ctx, &models.ResolveAdminRequest{CallerID: "admin", AccountID: "user"})
	require.NoError(t, err)
	assert.False(t, acc.IsAdmin())
	assert.False(t, acc.RequestAdminAccess)

	_, err = f.svc.ResolveAdminRequest(ctx, &models.ResolveAdminRequest{CallerID: "admin", AccountID: "user", Accept: true})
	assert.ErrorIs(t, err, ErrNoPendingRequest)
}

func TestAdminRequest_NoopForAdmin(t *testing.T) {
	f := newFixture(t)

	acc, err := f.svc.RequestAdminAccess(context.Background(), "admin")
	require.NoError(t, err)
	assert.False(t, acc.RequestAdminAccess)
}

func TestAdminOnlyOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListAdminRequests(ctx, "user")
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = f.svc.ListAdmins(ctx, "user")
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = f.svc.ListUsers(ctx, "ghost")
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = f.svc.ResolveAdminRequest(ctx, &models.ResolveAdminRequest{CallerID: "user", AccountID: "user", Accept: true})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListUsers_WithTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, tm := range []string{"09:00", "10:00"} {
		_, err := f.reservations.CreateInSlot(ctx, &domain.Reservation{UserID: "user", Date: "2024-06-01", Time: tm, Status: domain.StatusPending}, true)
		require.NoError(t, err)
	}

	list, err := f.svc.ListUsers(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, list, 3)

	totals := make(map[string]int)
	for _, s := range list {
		totals[s.Account.ID] = s.TotalReservations
	}
	assert.Equal(t, 2, totals["user"])
	assert.Equal(t, 0, totals["admin"])
}

func TestDemoteAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.DemoteAdmin(ctx, "admin", "root")
	assert.ErrorIs(t, err, ErrAccessDenied, "only a protected admin may demote")

	_, err = f.svc.DemoteAdmin(ctx, "root", "root")
	assert.ErrorIs(t, err, ErrProtectedAccount)

	_, err = f.svc.DemoteAdmin(ctx, "root", "user")
	assert.ErrorIs(t, err, ErrNotAdmin)

	_, err = f.svc.DemoteAdmin(ctx, "root", "ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	acc, err := f.svc.DemoteAdmin(ctx, "root", "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountTypeUser, acc.Type)

	admins, err := f.svc.ListAdmins(ctx, "root")
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "root", admins[0].ID)
}

func TestProvision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc, err := f.svc.Provision(ctx, &models.ProvisionRequest{ID: "ops", Email: "ops@example.com", Admin: true, Protected: true})
	require.NoError(t, err)
	assert.True(t, acc.IsAdmin())
	assert.True(t, acc.Protected)

	_, err = f.svc.Provision(ctx, &models.ProvisionRequest{ID: "ops", Email: "bad"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Provision(ctx, &models.ProvisionRequest{ID: "ops", Email: "ops@example.com", Protected: true})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// singleWriteAccounts падает на раздельной смене роли и флага заявки,
// а CompleteAdminRequest может быть настроен на ошибку
type singleWriteAccounts struct {
	*memory.AccountRepository
	completeErr error
}

var errSplitWrite = errors.New("role and request flag must change in one write")

func (a *singleWriteAccounts) SetRole(context.Context, string, domain.AccountType) error {
	return errSplitWrite
}

func (a *singleWriteAccounts) CompleteAdminRequest(ctx context.Context, id string, grant bool) error {
	if a.completeErr != nil {
		return a.completeErr
	}
	return a.AccountRepository.CompleteAdminRequest(ctx, id, grant)
}

func TestResolveAdminRequest_SingleWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := &singleWriteAccounts{AccountRepository: f.accounts}
	svc := NewService(repo, f.reservations, 0, logger.Discard())

	_, err := svc.RequestAdminAccess(ctx, "user")
	require.NoError(t, err)

	repo.completeErr = errors.New("connection reset")
	_, err = svc.ResolveAdminRequest(ctx, &models.ResolveAdminRequest{CallerID: "admin", AccountID: "user", Accept: true})
	assert.ErrorIs(t, err, ErrInternal)

	stored, err := f.accounts.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, stored.IsAdmin(), "failed resolve leaves the account untouched")
	assert.True(t, stored.RequestAdminAccess)

	repo.completeErr = nil
	acc, err := svc.ResolveAdminRequest(ctx, &models.ResolveAdminRequest{CallerID: "admin", AccountID: "user", Accept: true})
	require.NoError(t, err)
	assert.True(t, acc.IsAdmin())
	assert.False(t, acc.RequestAdminAccess)
}
