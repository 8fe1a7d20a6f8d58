package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		slot    Slot
		wantErr bool
	}{
		{name: "valid", slot: Slot{Date: "2024-06-01", Time: "10:00"}},
		{name: "bad date", slot: Slot{Date: "01/06/2024", Time: "10:00"}, wantErr: true},
		{name: "bad time", slot: Slot{Date: "2024-06-01", Time: "10h"}, wantErr: true},
		{name: "empty", slot: Slot{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPartition_Disjoint(t *testing.T) {
	reservations := []*Reservation{
		{ID: "a", Status: StatusPending},
		{ID: "b", Status: StatusConfirmed},
		{ID: "c", Status: StatusDenied},
	}

	confirmed := PartitionConfirmed.Filter(reservations)
	unconfirmed := PartitionUnconfirmed.Filter(reservations)

	require.Len(t, confirmed, 1)
	require.Len(t, unconfirmed, 2)
	for _, c := range confirmed {
		for _, u := range unconfirmed {
			assert.NotEqual(t, c.ID, u.ID)
		}
	}
	assert.Len(t, PartitionAll.Filter(reservations), 3)
}

func TestReservation_LegacyFlagsMutuallyExclusive(t *testing.T) {
	for _, s := range []ReservationStatus{StatusPending, StatusConfirmed, StatusDenied} {
		r := &Reservation{Status: s}
		assert.False(t, r.IsConfirmed() && r.IsDenied(), "status %s", s)
	}
}

func TestReservation_CanTransitionTo(t *testing.T) {
	r := &Reservation{Status: StatusPending}
	assert.True(t, r.CanTransitionTo(StatusConfirmed))
	assert.True(t, r.CanTransitionTo(StatusDenied))
	assert.False(t, r.CanTransitionTo(StatusPending))

	r.Status = StatusConfirmed
	assert.True(t, r.CanTransitionTo(StatusDenied))
	assert.True(t, r.CanTransitionTo(StatusConfirmed))
}

func TestPolicyPatch_Apply(t *testing.T) {
	yes := true
	policy := DefaultBookingPolicy()
	policy.AllowMultipleReservations = true

	PolicyPatch{AutoConfirm: &yes}.Apply(policy)

	assert.True(t, policy.AutoConfirm)
	assert.True(t, policy.AllowMultipleReservations, "absent fields must be preserved")
}

func TestParseOutcome(t *testing.T) {
	o, err := ParseOutcome("confirm")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, o.Status())

	o, err = ParseOutcome("deny")
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, o.Status())

	_, err = ParseOutcome("maybe")
	assert.Error(t, err)
}
