package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/m04kA/bookit/internal/domain"
)

func TestReservationDocument_RoundTripKeepsLegacyFlags(t *testing.T) {
	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	r := &domain.Reservation{
		ID: "id-1", UserID: "u1", Name: "Ann", ContactEmail: "ann@example.com",
		Date: "2024-06-01", Time: "10:00", Status: domain.StatusDenied,
		CreatedAt: created, UpdatedAt: created,
	}

	doc := newReservationDocument(r)
	assert.False(t, doc.Confirmed)
	assert.True(t, doc.NotConfirmed)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded reservationDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, r, decoded.toDomain())
}

func TestReservationDocument_StatusFromLegacyFlags(t *testing.T) {
	tests := []struct {
		name string
		doc  reservationDocument
		want domain.ReservationStatus
	}{
		{name: "confirmed", doc: reservationDocument{Confirmed: true}, want: domain.StatusConfirmed},
		{name: "not confirmed", doc: reservationDocument{NotConfirmed: true}, want: domain.StatusDenied},
		{name: "neither", doc: reservationDocument{}, want: domain.StatusPending},
		{name: "status wins", doc: reservationDocument{Status: "confirmed", NotConfirmed: true}, want: domain.StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.toDomain().Status)
		})
	}
}

func TestSlotDocument_FieldOrder(t *testing.T) {
	raw, err := bson.Marshal(slotDocument{Date: "2024-07-04", Time: "09:00"})
	require.NoError(t, err)

	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))
	require.Len(t, d, 2)
	assert.Equal(t, "date", d[0].Key)
	assert.Equal(t, "time", d[1].Key)
}

func TestPolicyDocument_ToDomainNeverNilTimes(t *testing.T) {
	policy := policyDocument{ID: policyDocumentID}.toDomain()
	assert.NotNil(t, policy.UnavailableTimes)
	assert.Empty(t, policy.UnavailableTimes)
}

func TestAccountDocument_UnknownTypeFallsBackToUser(t *testing.T) {
	acc := accountDocument{ID: "a", UserType: "superuser"}.toDomain()
	assert.Equal(t, domain.AccountTypeUser, acc.Type)
}
