package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mediroute-service/internal/domain"
	"mediroute-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "mediroute:places:"

// RedisPlaceCache stores place-search results as JSON strings; expiry is
// delegated to Redis via the key TTL.
type RedisPlaceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlaceCache(client *redis.Client, ttl time.Duration) *RedisPlaceCache {
	return &RedisPlaceCache{Client: client, TTL: ttl}
}

func (r *RedisPlaceCache) Get(ctx context.Context, key string) ([]domain.Facility, bool, error) {
	if r.Client == nil {
		return nil, false, errors.New("place cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get place cache: key must not be empty")
	}

	raw, err := r.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		obs.CacheLookupsTotal.WithLabelValues("redis", "miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		obs.CacheLookupsTotal.WithLabelValues("redis", "error").Inc()
		return nil, false, fmt.Errorf("get place cache: redis get %q: %w", key, err)
	}

	var places []domain.Facility
	if err := json.Unmarshal(raw, &places); err != nil {
		obs.CacheLookupsTotal.WithLabelValues("redis", "error").Inc()
		return nil, false, fmt.Errorf("get place cache: decode payload for %q: %w", key, err)
	}

	obs.CacheLookupsTotal.WithLabelValues("redis", "hit").Inc()
	return places, true, nil
}

func (r *RedisPlaceCache) Put(ctx context.Context, key string, places []domain.Facility) error {
	if r.Client == nil {
		return errors.New("place cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert place cache: empty key")
	}

	payload, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("insert place cache: encode payload: %w", err)
	}

	if err := r.Client.Set(ctx, redisKeyPrefix+key, payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert place cache: redis set %q: %w", key, err)
	}
	return nil
}

// OpenRedis returns a client for addr, or an error if the server is unreachable.
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis %s: %w", addr, err)
	}
	return client, nil
}
