package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/bookit/internal/domain"
)

// policyDocumentID идентификатор единственного документа политики
const policyDocumentID = "configurations"

// PolicyRepository глобальная политика бронирования в документе settings/configurations
type PolicyRepository struct {
	settings *mongo.Collection
}

// Get возвращает политику, создавая документ со значениями по умолчанию при первом чтении
func (r *PolicyRepository) Get(ctx context.Context) (*domain.BookingPolicy, error) {
	return r.findAndUpdate(ctx, "Get", bson.M{})
}

// Patch обновляет только переданные поля политики
func (r *PolicyRepository) Patch(ctx context.Context, patch domain.PolicyPatch) (*domain.BookingPolicy, error) {
	if patch.IsEmpty() {
		return r.Get(ctx)
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.AutoConfirm != nil {
		set["autoConfirm"] = *patch.AutoConfirm
	}
	if patch.AllowMultipleReservations != nil {
		set["allowMultipleReservations"] = *patch.AllowMultipleReservations
	}

	return r.findAndUpdate(ctx, "Patch", bson.M{"$set": set})
}

// AddUnavailableTime добавляет слот через $addToSet.
// Возвращает false, если слот уже был в списке.
func (r *PolicyRepository) AddUnavailableTime(ctx context.Context, slot domain.Slot) (bool, error) {
	if _, err := r.Get(ctx); err != nil {
		return false, err
	}

	item := slotDocument{Date: slot.Date, Time: slot.Time}
	filter := bson.M{
		"_id":              policyDocumentID,
		"unavailableTimes": bson.M{"$ne": item},
	}
	update := bson.M{
		"$addToSet": bson.M{"unavailableTimes": item},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.settings.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("%w: AddUnavailableTime: %v", ErrQuery, err)
	}
	return result.ModifiedCount > 0, nil
}

// RemoveUnavailableTime удаляет слот через $pull
func (r *PolicyRepository) RemoveUnavailableTime(ctx context.Context, slot domain.Slot) error {
	item := slotDocument{Date: slot.Date, Time: slot.Time}
	filter := bson.M{
		"_id":              policyDocumentID,
		"unavailableTimes": item,
	}
	update := bson.M{
		"$pull": bson.M{"unavailableTimes": item},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.settings.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%w: RemoveUnavailableTime: %v", ErrQuery, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUnavailableTimeNotFound, slot)
	}
	return nil
}

// findAndUpdate применяет update к документу политики (upsert) и возвращает результат.
// $setOnInsert заполняет значения по умолчанию только для полей, которые update не меняет.
func (r *PolicyRepository) findAndUpdate(ctx context.Context, op string, update bson.M) (*domain.BookingPolicy, error) {
	onInsert := bson.M{
		"autoConfirm":               domain.DefaultAutoConfirm,
		"allowMultipleReservations": domain.DefaultAllowMultipleReservations,
		"unavailableTimes":          bson.A{},
		"updatedAt":                 time.Now().UTC(),
	}
	if set, ok := update["$set"].(bson.M); ok {
		for field := range set {
			delete(onInsert, field)
		}
	}
	update["$setOnInsert"] = onInsert

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc policyDocument
	if err := r.settings.FindOneAndUpdate(ctx, bson.M{"_id": policyDocumentID}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, op, err)
	}
	return doc.toDomain(), nil
}
