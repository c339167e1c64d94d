package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "FACILITY_CATEGORIES", "CACHE_BACKEND", "ETA_KM_PER_MINUTE", "SEARCH_DELTA_DEG"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"hospital", "clinic"}, cfg.Search.Categories)
	assert.Equal(t, 0.05, cfg.Search.DeltaDegrees)
	assert.Equal(t, 30, cfg.Search.ResultLimit)
	assert.Equal(t, 0.5, cfg.ETA.KmPerMinute)
	assert.Equal(t, 5.0, cfg.ETA.BufferMinutes)
	assert.Equal(t, 3, cfg.ETA.MinMinutes)
	assert.Equal(t, "Moderate traffic", cfg.ETA.TrafficStatus)
	assert.Equal(t, "none", cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FACILITY_CATEGORIES", " hospital, ,doctors ")
	t.Setenv("ETA_BUFFER_MINUTES", "7.5")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"hospital", "doctors"}, cfg.Search.Categories)
	assert.Equal(t, 7.5, cfg.ETA.BufferMinutes)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SEARCH_RESULT_LIMIT", "thirty")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCH_RESULT_LIMIT")
}

func TestLoadPostgresNeedsDatabaseURL(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsETABelowFloor(t *testing.T) {
	t.Setenv("ETA_MIN_MINUTES", "0")
	t.Setenv("ETA_BUFFER_MINUTES", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ETA_MIN_MINUTES")

	t.Setenv("ETA_MIN_MINUTES", "4")
	t.Setenv("ETA_BUFFER_MINUTES", "-1")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ETA_BUFFER_MINUTES")

	t.Setenv("ETA_BUFFER_MINUTES", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ETA.MinMinutes)
}
