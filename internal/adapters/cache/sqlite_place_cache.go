package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mediroute-service/internal/domain"
	"mediroute-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLite backed cache of place-search results for local runs.
// fetched_at is stored as unix seconds.
type SqlitePlaceCache struct {
	DB  *sql.DB
	TTL time.Duration

	now func() time.Time
}

func NewSqlitePlaceCache(db *sql.DB, ttl time.Duration) *SqlitePlaceCache {
	return &SqlitePlaceCache{DB: db, TTL: ttl, now: time.Now}
}

// Fetch the cached places for key; entries older than TTL are misses.
func (s *SqlitePlaceCache) Get(ctx context.Context, key string) ([]domain.Facility, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("place cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get place cache: key must not be empty")
	}

	q := `
	SELECT 
        payload,
        fetched_at
    FROM place_cache
    WHERE cache_key = ?;
	`

	var payload string
	var fetchedAt int64
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		obs.CacheLookupsTotal.WithLabelValues("sqlite", "miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		obs.CacheLookupsTotal.WithLabelValues("sqlite", "error").Inc()
		return nil, false, fmt.Errorf("get place cache: query place_cache table: %w", err)
	}

	if s.TTL > 0 && s.now().Sub(time.Unix(fetchedAt, 0)) > s.TTL {
		obs.CacheLookupsTotal.WithLabelValues("sqlite", "miss").Inc()
		return nil, false, nil
	}

	var places []domain.Facility
	if err := json.Unmarshal([]byte(payload), &places); err != nil {
		obs.CacheLookupsTotal.WithLabelValues("sqlite", "error").Inc()
		return nil, false, fmt.Errorf("get place cache: decode payload for %q: %w", key, err)
	}

	obs.CacheLookupsTotal.WithLabelValues("sqlite", "hit").Inc()
	return places, true, nil
}

// Store the places for key, replacing any previous entry.
func (s *SqlitePlaceCache) Put(ctx context.Context, key string, places []domain.Facility) error {
	if s.DB == nil {
		return errors.New("place cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert place cache: empty key")
	}

	payload, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("insert place cache: encode payload: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO place_cache (
        cache_key,
        payload,
        fetched_at
    )
    VALUES (?, ?, ?);
	`, key, string(payload), s.now().Unix())
	if err != nil {
		return fmt.Errorf("insert place cache key=%q: %w", key, err)
	}

	return nil
}
