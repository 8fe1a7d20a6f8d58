package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/bookit/internal/domain"
)

// ReservationRepository бронирования в MongoDB.
// Занятость слота ведётся в коллекции slot_claims: один документ на слот, _id = ключ слота.
type ReservationRepository struct {
	reservations *mongo.Collection
	claims       *mongo.Collection
}

// CreateInSlot сохраняет бронирование.
// При exclusive=true слот захватывается upsert-ом по фильтру {_id, count: 0}:
// если слот уже занят, фильтр не совпадает и вставка падает на дубликате _id.
// Захват, за которым нет бронирования (процесс упал между захватом и вставкой),
// восстанавливается по фактическому числу бронирований слота, см. repairClaim.
func (r *ReservationRepository) CreateInSlot(ctx context.Context, res *domain.Reservation, exclusive bool) (*domain.Reservation, error) {
	slot := res.Slot()
	key := slot.Key()

	err := r.claim(ctx, key, exclusive)
	if exclusive && mongo.IsDuplicateKeyError(err) {
		repaired, repairErr := r.repairClaim(ctx, slot)
		if repairErr != nil {
			return nil, repairErr
		}
		if !repaired {
			return nil, fmt.Errorf("%w: %s", domain.ErrSlotTaken, slot)
		}
		err = r.claim(ctx, key, exclusive)
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSlotTaken, slot)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateInSlot - claim slot=%s: %v", ErrQuery, slot, err)
	}

	stored := *res
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	stored.UpdatedAt = stored.CreatedAt

	if _, err := r.reservations.InsertOne(ctx, newReservationDocument(&stored)); err != nil {
		// освобождаем захват, чтобы слот не остался занятым без бронирования
		if rbErr := r.release(ctx, key); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return nil, fmt.Errorf("%w: CreateInSlot - insert: %v", ErrQuery, err)
	}

	return &stored, nil
}

func (r *ReservationRepository) claim(ctx context.Context, key string, exclusive bool) error {
	filter := bson.M{"_id": key}
	if exclusive {
		filter["count"] = 0
	}
	update := bson.M{
		"$inc":         bson.M{"count": 1},
		"$currentDate": bson.M{"updatedAt": true},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.claims.UpdateOne(ctx, filter, update, opts)
	if err != nil && !exclusive && mongo.IsDuplicateKeyError(err) {
		// два параллельных upsert на новый слот: второй повторяем как обычный $inc
		_, err = r.claims.UpdateOne(ctx, filter, update, opts)
	}
	return err
}

// release откатывает захват. Контекст вызова к этому моменту может быть уже отменён
// (истёк таймаут вставки), поэтому откат выполняется в собственном контексте.
func (r *ReservationRepository) release(ctx context.Context, key string) error {
	rbCtx, cancel := rollbackContext(ctx)
	defer cancel()

	_, err := r.claims.UpdateOne(rbCtx,
		bson.M{"_id": key, "count": bson.M{"$gt": 0}},
		bson.M{
			"$inc":         bson.M{"count": -1},
			"$currentDate": bson.M{"updatedAt": true},
		},
	)
	if err != nil {
		return fmt.Errorf("release claim key=%s: %w", key, err)
	}
	return nil
}

// repairClaim сверяет счётчик захвата с числом бронирований слота.
// Счётчик сбрасывается к фактическому значению только если захват давно не менялся,
// чтобы не задеть вставку, которая ещё выполняется. Возвращает true, если счётчик исправлен.
func (r *ReservationRepository) repairClaim(ctx context.Context, slot domain.Slot) (bool, error) {
	key := slot.Key()

	var claim claimDocument
	err := r.claims.FindOne(ctx, bson.M{"_id": key}).Decode(&claim)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: repairClaim - find claim key=%s: %v", ErrQuery, key, err)
	}

	actual, err := r.reservations.CountDocuments(ctx, bson.M{"date": slot.Date, "time": slot.Time})
	if err != nil {
		return false, fmt.Errorf("%w: repairClaim - count slot=%s: %v", ErrQuery, slot, err)
	}

	if !claimIsLeaked(claim, actual, time.Now()) {
		return false, nil
	}

	result, err := r.claims.UpdateOne(ctx,
		bson.M{"_id": key, "count": claim.Count, "updatedAt": claim.UpdatedAt},
		bson.M{"$set": bson.M{"count": actual, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("%w: repairClaim - reset claim key=%s: %v", ErrQuery, key, err)
	}
	return result.ModifiedCount == 1, nil
}

// GetByID получает бронирование по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var doc reservationDocument
	err := r.reservations.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrReservationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrQuery, err)
	}
	return doc.toDomain(), nil
}

// ListByDate возвращает бронирования на дату в порядке создания
func (r *ReservationRepository) ListByDate(ctx context.Context, date string) ([]*domain.Reservation, error) {
	return r.find(ctx, "ListByDate", bson.M{"date": date})
}

// ListByUser возвращает бронирования пользователя в порядке создания
func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	return r.find(ctx, "ListByUser", bson.M{"userId": userID})
}

// SetStatus обновляет статус и возвращает обновлённый документ
func (r *ReservationRepository) SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	update := bson.M{"$set": bson.M{
		"status":       string(status),
		"confirmed":    status == domain.StatusConfirmed,
		"notConfirmed": status == domain.StatusDenied,
		"updatedAt":    time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc reservationDocument
	err := r.reservations.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrReservationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetStatus: %v", ErrQuery, err)
	}
	return doc.toDomain(), nil
}

// CountByUser возвращает количество бронирований каждого пользователя
func (r *ReservationRepository) CountByUser(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$userId"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.reservations.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByUser: %v", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		UserID string `bson:"_id"`
		Total  int    `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: CountByUser: %v", ErrDecode, err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Total
	}
	return counts, nil
}

func (r *ReservationRepository) find(ctx context.Context, op string, filter bson.M) ([]*domain.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.reservations.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, op, err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, op, err)
	}

	out := make([]*domain.Reservation, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}
