package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds all settings for the mediroute service.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	Nominatim NominatimConfig
	Search    SearchConfig
	ETA       ETAConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Kafka     KafkaConfig

	DatabaseURL string
	SqlitePath  string
}

type NominatimConfig struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration
}

type SearchConfig struct {
	DeltaDegrees             float64
	ResultLimit              int
	Categories               []string
	EscalateUpstreamFailures bool
}

// ETAConfig holds the placeholder travel-time constants. KmPerMinute of 0.5
// is an effective 30 km/h.
type ETAConfig struct {
	KmPerMinute   float64
	BufferMinutes float64
	MinMinutes    int
	TrafficStatus string
}

type CacheConfig struct {
	Backend string // none, redis, postgres, sqlite
	TTL     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers  []string
	SOSTopic string
}

// Load reads configuration from the environment. Call godotenv.Load first
// to pick up a local .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        Get("PORT", "8080"),
		AppEnv:      Get("APP_ENV", "development"),
		LogLevel:    Get("LOG_LEVEL", "info"),
		DatabaseURL: Get("DATABASE_URL", ""),
		SqlitePath:  Get("SQLITE_PATH", "data/cache.db"),
		Nominatim: NominatimConfig{
			BaseURL:        Get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent:      Get("NOMINATIM_USER_AGENT", "MediRoute/1.0 (mediroute@gmail.com)"),
			AcceptLanguage: Get("NOMINATIM_ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
		},
		Search: SearchConfig{
			Categories: GetList("FACILITY_CATEGORIES", []string{"hospital", "clinic"}),
		},
		ETA: ETAConfig{
			TrafficStatus: Get("TRAFFIC_STATUS", "Moderate traffic"),
		},
		Cache: CacheConfig{
			Backend: strings.ToLower(Get("CACHE_BACKEND", "none")),
		},
		Redis: RedisConfig{
			Addr:     Get("REDIS_HOST", "127.0.0.1") + ":" + Get("REDIS_PORT", "6379"),
			Password: Get("REDIS_PASS", ""),
		},
		Kafka: KafkaConfig{
			Brokers:  GetList("KAFKA_BROKERS", nil),
			SOSTopic: Get("SOS_TOPIC", "mediroute.sos"),
		},
	}

	var err error
	var errs []error
	collect := func(e error) {
		if e != nil {
			errs = append(errs, e)
		}
	}

	cfg.Nominatim.Timeout, err = GetDuration("UPSTREAM_TIMEOUT", 10*time.Second)
	collect(err)
	cfg.Search.DeltaDegrees, err = GetFloat("SEARCH_DELTA_DEG", 0.05)
	collect(err)
	cfg.Search.ResultLimit, err = GetInt("SEARCH_RESULT_LIMIT", 30)
	collect(err)
	cfg.Search.EscalateUpstreamFailures, err = GetBool("ESCALATE_UPSTREAM_FAILURES", false)
	collect(err)
	cfg.ETA.KmPerMinute, err = GetFloat("ETA_KM_PER_MINUTE", 0.5)
	collect(err)
	cfg.ETA.BufferMinutes, err = GetFloat("ETA_BUFFER_MINUTES", 5)
	collect(err)
	cfg.ETA.MinMinutes, err = GetInt("ETA_MIN_MINUTES", 3)
	collect(err)
	cfg.Cache.TTL, err = GetDuration("CACHE_TTL", 24*time.Hour)
	collect(err)
	cfg.Redis.DB, err = GetInt("REDIS_DB", 0)
	collect(err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MinETAFloorMinutes is the lowest accepted ETA_MIN_MINUTES; no route
// estimate is ever shorter than this.
const MinETAFloorMinutes = 3

func (c *Config) validate() error {
	if c.Search.DeltaDegrees <= 0 {
		return fmt.Errorf("config: SEARCH_DELTA_DEG must be positive, got %v", c.Search.DeltaDegrees)
	}
	if c.Search.ResultLimit < 1 {
		return fmt.Errorf("config: SEARCH_RESULT_LIMIT must be at least 1, got %d", c.Search.ResultLimit)
	}
	if len(c.Search.Categories) == 0 {
		return errors.New("config: FACILITY_CATEGORIES must name at least one category")
	}
	if c.ETA.KmPerMinute <= 0 {
		return fmt.Errorf("config: ETA_KM_PER_MINUTE must be positive, got %v", c.ETA.KmPerMinute)
	}
	if c.ETA.BufferMinutes < 0 {
		return fmt.Errorf("config: ETA_BUFFER_MINUTES must not be negative, got %v", c.ETA.BufferMinutes)
	}
	if c.ETA.MinMinutes < MinETAFloorMinutes {
		return fmt.Errorf("config: ETA_MIN_MINUTES must be at least %d, got %d", MinETAFloorMinutes, c.ETA.MinMinutes)
	}

	switch c.Cache.Backend {
	case "none", "redis", "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for CACHE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("config: unknown CACHE_BACKEND %q", c.Cache.Backend)
	}
	return nil
}
