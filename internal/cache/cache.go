// Package cache provides a short-lived Redis cache for availability
// listings. Availability is a snapshot by contract — a stale read is resolved
// by the claim's conflict check — so a few seconds of caching is safe.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/barberflow/booking-api/internal/config"
)

// NewRedisClient connects using REDIS_ADDR. Returns nil when Redis is not
// configured or unreachable; callers degrade to uncached reads.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return client
}

type Availability struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailability(client *redis.Client, ttl time.Duration) *Availability {
	return &Availability{client: client, ttl: ttl}
}

func (a *Availability) enabled() bool {
	return a != nil && a.client != nil
}

// SlotsKey builds the cache key for a master/date pair.
func SlotsKey(master string, date time.Time) string {
	return "avail:slots:" + master + ":" + date.Format("2006-01-02")
}

func (a *Availability) GetSlots(ctx context.Context, master string, date time.Time) ([]string, bool) {
	if !a.enabled() {
		return nil, false
	}

	raw, err := a.client.Get(ctx, SlotsKey(master, date)).Result()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (a *Availability) SetSlots(ctx context.Context, master string, date time.Time, slots []string) {
	if !a.enabled() {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	a.client.Set(ctx, SlotsKey(master, date), raw, a.ttl)
}

// Invalidate drops the cached listing after a claim or cancellation changes
// the free set for that master/date.
func (a *Availability) Invalidate(ctx context.Context, master string, date time.Time) {
	if !a.enabled() {
		return
	}
	a.client.Del(ctx, SlotsKey(master, date))
}
