package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRollbackContext_SurvivesExpiredCallContext(t *testing.T) {
	callCtx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-callCtx.Done()

	rbCtx, rbCancel := rollbackContext(callCtx)
	defer rbCancel()

	assert.NoError(t, rbCtx.Err())
	deadline, ok := rbCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(rollbackTimeout), deadline, time.Second)
}

func TestClaimIsLeaked(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-staleClaimAfter - time.Second)
	recent := now.Add(-time.Second)

	tests := []struct {
		name   string
		claim  claimDocument
		actual int64
		want   bool
	}{
		{name: "orphaned claim", claim: claimDocument{Count: 1, UpdatedAt: old}, actual: 0, want: true},
		{name: "insert may be in flight", claim: claimDocument{Count: 1, UpdatedAt: recent}, actual: 0, want: false},
		{name: "backed by reservation", claim: claimDocument{Count: 1, UpdatedAt: old}, actual: 1, want: false},
		{name: "counter behind", claim: claimDocument{Count: 0, UpdatedAt: old}, actual: 1, want: false},
		{name: "claim without timestamp", claim: claimDocument{Count: 2}, actual: 1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, claimIsLeaked(tt.claim, tt.actual, now))
		})
	}
}

func TestClaimDocument_Fields(t *testing.T) {
	updated := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	raw, err := bson.Marshal(claimDocument{ID: "2024-06-01T10:00", Count: 1, UpdatedAt: updated})
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "2024-06-01T10:00", m["_id"])
	assert.EqualValues(t, 1, m["count"])
	assert.Contains(t, m, "updatedAt")
}
