package ports

import (
	"context"
	"mediroute-service/internal/domain"
)

// Contract for searching an external place service for facilities of one
// category around a point. An empty result is not an error.
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, center domain.Coordinates, category string) ([]domain.Facility, error)
}
