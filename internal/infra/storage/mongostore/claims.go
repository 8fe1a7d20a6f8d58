package mongostore

import (
	"context"
	"time"
)

const (
	// rollbackTimeout таймаут отката захвата слота
	rollbackTimeout = 5 * time.Second

	// staleClaimAfter захват, не менявшийся дольше этого срока, больше не может относиться
	// к выполняющейся вставке: таймаут вызова хранилища заметно короче
	staleClaimAfter = 2 * time.Minute
)

// claimDocument документ коллекции slot_claims
type claimDocument struct {
	ID        string    `bson:"_id"`
	Count     int64     `bson:"count"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// claimIsLeaked сообщает, что счётчик захвата больше числа бронирований и давно не менялся
func claimIsLeaked(claim claimDocument, actual int64, now time.Time) bool {
	return claim.Count > actual && now.Sub(claim.UpdatedAt) >= staleClaimAfter
}

// rollbackContext контекст для компенсирующей записи: не наследует отмену и дедлайн ctx
func rollbackContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
}
