package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/bookit/internal/domain"
)

// AccountRepository аккаунты в коллекции users
type AccountRepository struct {
	users *mongo.Collection
}

// Get получает аккаунт по ID
func (r *AccountRepository) Get(ctx context.Context, id string) (*domain.Account, error) {
	var doc accountDocument
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrAccountNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrQuery, err)
	}
	return doc.toDomain(), nil
}

// Ensure создает аккаунт при первом входе; существующий документ не меняется
func (r *AccountRepository) Ensure(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"email":              acc.Email,
		"phone":              acc.Phone,
		"name":               acc.Name,
		"userType":           string(acc.Type),
		"requestAdminAccess": false,
		"protected":          false,
		"createdAt":          now,
		"updatedAt":          now,
	}}

	return r.findAndUpdate(ctx, "Ensure", acc.ID, update)
}

// Upsert создает или перезаписывает аккаунт целиком
func (r *AccountRepository) Upsert(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"email":              acc.Email,
			"phone":              acc.Phone,
			"name":               acc.Name,
			"userType":           string(acc.Type),
			"requestAdminAccess": acc.RequestAdminAccess,
			"protected":          acc.Protected,
			"updatedAt":          now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	return r.findAndUpdate(ctx, "Upsert", acc.ID, update)
}

// ListAll возвращает все аккаунты
func (r *AccountRepository) ListAll(ctx context.Context) ([]*domain.Account, error) {
	return r.find(ctx, "ListAll", bson.M{})
}

// ListByType возвращает аккаунты с указанной ролью
func (r *AccountRepository) ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
	return r.find(ctx, "ListByType", bson.M{"userType": string(accountType)})
}

// ListRequestingAdmin возвращает аккаунты с активной заявкой на права администратора
func (r *AccountRepository) ListRequestingAdmin(ctx context.Context) ([]*domain.Account, error) {
	return r.find(ctx, "ListRequestingAdmin", bson.M{"requestAdminAccess": true})
}

// SetRole меняет роль аккаунта
func (r *AccountRepository) SetRole(ctx context.Context, id string, accountType domain.AccountType) error {
	return r.update(ctx, "SetRole", id, bson.M{"userType": string(accountType)})
}

// CompleteAdminRequest одним $set снимает флаг заявки и при grant=true назначает роль admin
func (r *AccountRepository) CompleteAdminRequest(ctx context.Context, id string, grant bool) error {
	set := bson.M{"requestAdminAccess": false}
	if grant {
		set["userType"] = string(domain.AccountTypeAdmin)
	}
	return r.update(ctx, "CompleteAdminRequest", id, set)
}

// SetRequestAdminAccess устанавливает флаг заявки на права администратора
func (r *AccountRepository) SetRequestAdminAccess(ctx context.Context, id string, requested bool) error {
	return r.update(ctx, "SetRequestAdminAccess", id, bson.M{"requestAdminAccess": requested})
}

// UpdateProfile обновляет имя и телефон
func (r *AccountRepository) UpdateProfile(ctx context.Context, id string, name, phone string) (*domain.Account, error) {
	if err := r.update(ctx, "UpdateProfile", id, bson.M{"name": name, "phone": phone}); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *AccountRepository) update(ctx context.Context, op, id string, set bson.M) error {
	set["updatedAt"] = time.Now().UTC()

	result, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrQuery, op, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: id=%s", domain.ErrAccountNotFound, id)
	}
	return nil
}

func (r *AccountRepository) findAndUpdate(ctx context.Context, op, id string, update bson.M) (*domain.Account, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc accountDocument
	if err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, op, err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) find(ctx context.Context, op string, filter bson.M) ([]*domain.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, op, err)
	}
	defer cursor.Close(ctx)

	var docs []accountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, op, err)
	}

	out := make([]*domain.Account, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}
