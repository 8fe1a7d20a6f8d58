// Package policycache кэширует политику бронирования в Redis.
// Чтение идёт через кэш, любое изменение увеличивает счётчик поколения и сбрасывает ключ.
// Запись в кэше помечена поколением, при котором её прочитали из хранилища;
// запись старого поколения считается промахом.
// Недоступность Redis не ломает запросы: они уходят напрямую в хранилище.
package policycache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/bookit/internal/domain"
)

// DefaultKey ключ Redis для политики
const DefaultKey = "bookit:booking-policy"

const generationSuffix = ":generation"

type cachedSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type cachedPolicy struct {
	AutoConfirm               bool         `json:"autoConfirm"`
	AllowMultipleReservations bool         `json:"allowMultipleReservations"`
	UnavailableTimes          []cachedSlot `json:"unavailableTimes"`
	UpdatedAt                 time.Time    `json:"updatedAt"`
	Generation                int64        `json:"generation"`
}

// Cache декоратор Repository с read-through кэшем в Redis
type Cache struct {
	next   Repository
	client Client
	key    string
	genKey string
	ttl    time.Duration
	logger Logger
}

// New создает кэш; ttl <= 0 означает хранение без срока
func New(next Repository, client Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		next:   next,
		client: client,
		key:    DefaultKey,
		genKey: DefaultKey + generationSuffix,
		ttl:    ttl,
		logger: logger,
	}
}

// Get возвращает политику из кэша или из хранилища.
// Поколение читается до обращения к хранилищу: если между чтением и записью в кэш
// политика изменилась, запись получит устаревшее поколение и не будет использована.
func (c *Cache) Get(ctx context.Context) (*domain.BookingPolicy, error) {
	cached, generation, ok := c.load(ctx)
	if ok {
		return cached, nil
	}

	policy, err := c.next.Get(ctx)
	if err != nil {
		return nil, err
	}

	if generation >= 0 {
		c.store(ctx, policy, generation)
	}
	return policy, nil
}

// load читает запись и текущее поколение одной командой MGET.
// generation = -1, если поколение узнать не удалось: тогда кэш не заполняется.
func (c *Cache) load(ctx context.Context) (*domain.BookingPolicy, int64, bool) {
	values, err := c.client.MGet(ctx, c.key, c.genKey).Result()
	if err != nil {
		c.logger.Warn("PolicyCache.Get: redis mget failed key=%s: %v", c.key, err)
		return nil, -1, false
	}
	if len(values) != 2 {
		c.logger.Warn("PolicyCache.Get: unexpected mget reply size=%d", len(values))
		return nil, -1, false
	}

	generation, err := parseGeneration(values[1])
	if err != nil {
		c.logger.Warn("PolicyCache.Get: corrupted generation key=%s: %v", c.genKey, err)
		return nil, -1, false
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, generation, false
	}

	var cached cachedPolicy
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		c.logger.Warn("PolicyCache.Get: corrupted entry key=%s", c.key)
		return nil, generation, false
	}
	if cached.Generation != generation {
		return nil, generation, false
	}
	return cached.toDomain(), generation, true
}

func parseGeneration(v interface{}) (int64, error) {
	switch g := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.ParseInt(g, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

// Patch обновляет политику и сбрасывает кэш
func (c *Cache) Patch(ctx context.Context, patch domain.PolicyPatch) (*domain.BookingPolicy, error) {
	policy, err := c.next.Patch(ctx, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return policy, nil
}

// AddUnavailableTime добавляет недоступный слот и сбрасывает кэш
func (c *Cache) AddUnavailableTime(ctx context.Context, slot domain.Slot) (bool, error) {
	added, err := c.next.AddUnavailableTime(ctx, slot)
	if err != nil {
		return false, err
	}
	if added {
		c.invalidate(ctx)
	}
	return added, nil
}

// RemoveUnavailableTime удаляет недоступный слот и сбрасывает кэш
func (c *Cache) RemoveUnavailableTime(ctx context.Context, slot domain.Slot) error {
	if err := c.next.RemoveUnavailableTime(ctx, slot); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *Cache) store(ctx context.Context, policy *domain.BookingPolicy, generation int64) {
	entry := fromDomain(policy)
	entry.Generation = generation

	raw, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("PolicyCache.store: marshal failed: %v", err)
		return
	}
	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("PolicyCache.store: redis set failed key=%s: %v", c.key, err)
	}
}

// invalidate переводит кэш на новое поколение и удаляет текущую запись
func (c *Cache) invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, c.genKey).Err(); err != nil {
		c.logger.Warn("PolicyCache.invalidate: redis incr failed key=%s: %v", c.genKey, err)
	}
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		c.logger.Warn("PolicyCache.invalidate: redis del failed key=%s: %v", c.key, err)
	}
}

func fromDomain(p *domain.BookingPolicy) cachedPolicy {
	out := cachedPolicy{
		AutoConfirm:               p.AutoConfirm,
		AllowMultipleReservations: p.AllowMultipleReservations,
		UnavailableTimes:          make([]cachedSlot, 0, len(p.UnavailableTimes)),
		UpdatedAt:                 p.UpdatedAt,
	}
	for _, s := range p.UnavailableTimes {
		out.UnavailableTimes = append(out.UnavailableTimes, cachedSlot{Date: s.Date, Time: s.Time})
	}
	return out
}

func (c cachedPolicy) toDomain() *domain.BookingPolicy {
	out := &domain.BookingPolicy{
		AutoConfirm:               c.AutoConfirm,
		AllowMultipleReservations: c.AllowMultipleReservations,
		UnavailableTimes:          make([]domain.Slot, 0, len(c.UnavailableTimes)),
		UpdatedAt:                 c.UpdatedAt,
	}
	for _, s := range c.UnavailableTimes {
		out.UnavailableTimes = append(out.UnavailableTimes, domain.Slot{Date: s.Date, Time: s.Time})
	}
	return out
}
