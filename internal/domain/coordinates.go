package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Validate reports ErrInvalidLocation for non-finite or out-of-range values.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return fmt.Errorf("%w: coordinates must be finite", ErrInvalidLocation)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidLocation, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidLocation, c.Lon)
	}
	return nil
}

// BoundingBox is a rectangular lat/lon region used to scope a place search.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// BoxAround returns the box spanning c ± delta degrees on both axes.
func BoxAround(c Coordinates, delta float64) BoundingBox {
	return BoundingBox{
		MinLon: c.Lon - delta,
		MinLat: c.Lat - delta,
		MaxLon: c.Lon + delta,
		MaxLat: c.Lat + delta,
	}
}

// ViewBox renders the box as "minLon,minLat,maxLon,maxLat".
func (b BoundingBox) ViewBox() string {
	return fmt.Sprintf("%.4f,%.4f,%.4f,%.4f", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}
