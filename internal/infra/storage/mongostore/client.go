package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Имена коллекций
const (
	ReservationsCollection = "reservations"
	SlotClaimsCollection   = "slot_claims"
	SettingsCollection     = "settings"
	UsersCollection        = "users"
)

// Store подключение к базе MongoDB и её коллекции
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes создает индексы, используемые запросами репозиториев
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(ReservationsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes - reservations: %v", ErrQuery, err)
	}

	_, err = s.db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userType", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes - users: %v", ErrQuery, err)
	}

	return nil
}

// Reservations возвращает репозиторий бронирований
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{
		reservations: s.db.Collection(ReservationsCollection),
		claims:       s.db.Collection(SlotClaimsCollection),
	}
}

// Policy возвращает репозиторий политики бронирования
func (s *Store) Policy() *PolicyRepository {
	return &PolicyRepository{settings: s.db.Collection(SettingsCollection)}
}

// Accounts возвращает репозиторий аккаунтов
func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{users: s.db.Collection(UsersCollection)}
}

// Close закрывает соединение
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
