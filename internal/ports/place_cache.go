package ports

import (
	"context"
	"mediroute-service/internal/domain"
)

// Cache of place-search results keyed by category and bounding box.
// Get reports ok=false on a miss or an expired entry.
type PlaceCache interface {
	Get(ctx context.Context, key string) (places []domain.Facility, ok bool, err error)
	Put(ctx context.Context, key string, places []domain.Facility) error
}
