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

// SQLPlaceCache is a Postgres-backed cache of place-search results.
type SQLPlaceCache struct {
	DB  *sql.DB
	TTL time.Duration

	now func() time.Time
}

func NewSQLPlaceCache(db *sql.DB, ttl time.Duration) *SQLPlaceCache {
	return &SQLPlaceCache{DB: db, TTL: ttl, now: time.Now}
}

// Fetch the cached places for key; entries older than TTL are misses.
func (s *SQLPlaceCache) Get(
	ctx context.Context,
	key string,
) (_ []domain.Facility, _ bool, err error) {
	defer obs.Time(ctx, "place.cache.postgres.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("place cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get place cache: key must not be empty")
	}

	q := `
	SELECT payload, fetched_at
    FROM place_cache
    WHERE cache_key = $1;
	`

	var payload string
	var fetchedAt time.Time
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		obs.CacheLookupsTotal.WithLabelValues("postgres", "miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		obs.CacheLookupsTotal.WithLabelValues("postgres", "error").Inc()
		return nil, false, fmt.Errorf("get place cache: query place_cache table: %w", err)
	}

	if s.TTL > 0 && s.now().Sub(fetchedAt) > s.TTL {
		obs.CacheLookupsTotal.WithLabelValues("postgres", "miss").Inc()
		return nil, false, nil
	}

	var places []domain.Facility
	if err := json.Unmarshal([]byte(payload), &places); err != nil {
		obs.CacheLookupsTotal.WithLabelValues("postgres", "error").Inc()
		return nil, false, fmt.Errorf("get place cache: decode payload for %q: %w", key, err)
	}

	obs.CacheLookupsTotal.WithLabelValues("postgres", "hit").Inc()
	return places, true, nil
}

// Store the places for key, replacing any previous entry.
func (s *SQLPlaceCache) Put(ctx context.Context, key string, places []domain.Facility) error {
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
	INSERT INTO place_cache (cache_key, payload, fetched_at)
    VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		fetched_at = EXCLUDED.fetched_at;
	`, key, string(payload), s.now().UTC())
	if err != nil {
		return fmt.Errorf("insert place cache key=%q: %w", key, err)
	}

	return nil
}

// Prune deletes entries older than TTL and reports how many were removed.
func (s *SQLPlaceCache) Prune(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("place cache: db is nil")
	}
	if s.TTL <= 0 {
		return 0, nil
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM place_cache WHERE fetched_at < $1;`, s.now().Add(-s.TTL).UTC())
	if err != nil {
		return 0, fmt.Errorf("prune place cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune place cache: rows affected: %w", err)
	}
	return n, nil
}
