package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/bookit/internal/config"
	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/infra/cache/policycache"
	accountRepo "github.com/m04kA/bookit/internal/infra/storage/account"
	"github.com/m04kA/bookit/internal/infra/storage/memory"
	"github.com/m04kA/bookit/internal/infra/storage/mongostore"
	policyRepo "github.com/m04kA/bookit/internal/infra/storage/policy"
	reservationRepo "github.com/m04kA/bookit/internal/infra/storage/reservation"
	"github.com/m04kA/bookit/internal/service/accounts"
	"github.com/m04kA/bookit/pkg/dbmetrics"
	"github.com/m04kA/bookit/pkg/logger"
	"github.com/m04kA/bookit/pkg/metrics"
	"github.com/m04kA/bookit/pkg/txmanager"
)

const connectTimeout = 10 * time.Second

// reservationStore объединение операций, которые нужны use case'ам и сервисам
type reservationStore interface {
	CreateInSlot(ctx context.Context, r *domain.Reservation, exclusive bool) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListByDate(ctx context.Context, date string) ([]*domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error)
	CountByUser(ctx context.Context) (map[string]int, error)
}

type backend struct {
	reservations reservationStore
	policy       policycache.Repository
	accounts     accounts.AccountRepository
	closers      []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openBackend подключает хранилище, выбранное в storage.driver, и кэш политики, если задан redis.addr
func openBackend(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*backend, error) {
	b := &backend{}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, stop, err := openPostgres(ctx, cfg, m, log)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() {
			close(stop)
			_ = db.Unwrap().Close()
		})

		tx := txmanager.NewTransactionManager(db)
		b.reservations = reservationRepo.NewRepository(db, tx)
		b.policy = policyRepo.NewRepository(db, tx)
		b.accounts = accountRepo.NewRepository(db)

	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		store, err := mongostore.Connect(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(connectCtx); err != nil {
			_ = store.Close(context.Background())
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = store.Close(context.Background()) })
		log.Info("Connected to MongoDB (db=%s)", cfg.Mongo.Database)

		b.reservations = store.Reservations()
		b.policy = store.Policy()
		b.accounts = store.Accounts()

	case config.DriverMemory:
		log.Warn("Using in-memory storage, data is lost on restart")
		b.reservations = memory.NewReservationRepository()
		b.policy = memory.NewPolicyRepository()
		b.accounts = memory.NewAccountRepository()

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			// Кэш необязателен: без Redis политика читается из хранилища
			log.Warn("Redis at %s is unavailable, policy cache disabled: %v", cfg.Redis.Addr, err)
			_ = client.Close()
		} else {
			b.policy = policycache.New(b.policy, client, cfg.Redis.TTL(), log)
			b.closers = append(b.closers, func() { _ = client.Close() })
			log.Info("Policy cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
		}
	}

	return b, nil
}

// openPostgres открывает пул соединений и оборачивает его сбором метрик
func openPostgres(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*dbmetrics.DB, chan struct{}, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stop := make(chan struct{})
	return dbmetrics.WrapWithDefault(db, m, cfg.Database.DBName, stop), stop, nil
}
