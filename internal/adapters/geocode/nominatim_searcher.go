package geocode

import (
	"context"
	"errors"
	"fmt"
	"mediroute-service/internal/domain"
	"mediroute-service/internal/platform/obs"
	"mediroute-service/internal/ports"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL        = "https://nominatim.openstreetmap.org"
	DefaultUserAgent      = "MediRoute/1.0 (mediroute@gmail.com)"
	DefaultAcceptLanguage = "en-US,en;q=0.9"
	DefaultDelta          = 0.05
	DefaultLimit          = 30
)

type Options struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	// Delta is the half-width of the search box in degrees (~5 km at 0.05).
	Delta   float64
	Limit   int
	Timeout time.Duration
	// Cache is optional; a nil cache always goes upstream.
	Cache ports.PlaceCache
	// Client overrides the default HTTP client, mainly for tests.
	Client *http.Client
}

// NominatimSearcher implements PlaceSearcher using the OpenStreetMap
// Nominatim search API.
//
// It coordinates:
//   - Bounding-box construction around the caller's point
//   - Optional place cache lookups and writes
//   - External API calls with retry/backoff
//
// The searcher is safe for concurrent use.
type NominatimSearcher struct {
	session        *http.Client
	baseURL        string
	userAgent      string
	acceptLanguage string
	delta          float64
	limit          int
	cache          ports.PlaceCache
}

func NewNominatimSearcher(opts Options) (*NominatimSearcher, error) {
	if opts.Delta < 0 {
		return nil, errors.New("nominatim searcher: delta must not be negative")
	}
	if opts.Limit < 0 {
		return nil, errors.New("nominatim searcher: limit must not be negative")
	}

	s := &NominatimSearcher{
		session:        opts.Client,
		baseURL:        strings.TrimRight(orDefault(opts.BaseURL, DefaultBaseURL), "/"),
		userAgent:      orDefault(opts.UserAgent, DefaultUserAgent),
		acceptLanguage: orDefault(opts.AcceptLanguage, DefaultAcceptLanguage),
		delta:          opts.Delta,
		limit:          opts.Limit,
		cache:          opts.Cache,
	}
	if s.session == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		s.session = &http.Client{Timeout: timeout}
	}
	if s.delta == 0 {
		s.delta = DefaultDelta
	}
	if s.limit == 0 {
		s.limit = DefaultLimit
	}

	return s, nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// CacheKey identifies one search: category plus the rounded bounding box.
func CacheKey(category string, box domain.BoundingBox) string {
	return strings.ToLower(category) + "|" + box.ViewBox()
}

// SearchPlaces returns facilities of one category inside the box around center.
// A non-success upstream status yields an empty list; only transport and
// decode failures are returned as errors.
func (s *NominatimSearcher) SearchPlaces(
	ctx context.Context,
	center domain.Coordinates,
	category string,
) (_ []domain.Facility, err error) {
	defer obs.Time(ctx, "nominatim.SearchPlaces")(&err)

	if err := center.Validate(); err != nil {
		return nil, fmt.Errorf("search places: %w", err)
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return nil, errors.New("search places: category must be non-empty")
	}

	box := domain.BoxAround(center, s.delta)
	key := CacheKey(category, box)

	// Check the place cache before issuing an external call.
	if s.cache != nil {
		cached, ok, cerr := s.cache.Get(ctx, key)
		if cerr != nil {
			obs.L().Warn("place cache read failed", zap.String("key", key), zap.Error(cerr))
		} else if ok {
			return cached, nil
		}
	}

	places, err := s.fetch(ctx, category, box)
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			obs.L().Warn("nominatim returned non-success status",
				zap.String("category", category),
				zap.Int("status", he.Code),
			)
			obs.PlaceSearchTotal.WithLabelValues(category, "empty").Inc()
			return []domain.Facility{}, nil
		}
		obs.PlaceSearchTotal.WithLabelValues(category, "error").Inc()
		return nil, fmt.Errorf("search places %q: %w", category, err)
	}

	outcome := "ok"
	if len(places) == 0 {
		outcome = "empty"
	}
	obs.PlaceSearchTotal.WithLabelValues(category, outcome).Inc()

	if s.cache != nil && len(places) > 0 {
		if err := s.cache.Put(ctx, key, places); err != nil {
			obs.L().Warn("place cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return places, nil
}
