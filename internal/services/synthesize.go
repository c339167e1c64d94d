package services

import (
	"math"
	"mediroute-service/internal/domain"
	"strconv"
)

// ETAConfig holds the linear travel-time estimate. The defaults are
// placeholders: 30 km/h effective speed, a 5 minute buffer, 3 minute floor.
type ETAConfig struct {
	KmPerMinute   float64
	BufferMinutes float64
	MinMinutes    int
	TrafficStatus string
}

func DefaultETAConfig() ETAConfig {
	return ETAConfig{
		KmPerMinute:   0.5,
		BufferMinutes: 5,
		MinMinutes:    3,
		TrafficStatus: "Moderate traffic",
	}
}

// EstimateMinutes returns max(MinMinutes, round(km/KmPerMinute + BufferMinutes)).
func (c ETAConfig) EstimateMinutes(km float64) int {
	speed := c.KmPerMinute
	if speed <= 0 {
		speed = DefaultETAConfig().KmPerMinute
	}

	m := int(math.Round(km/speed + c.BufferMinutes))
	if m < c.MinMinutes {
		m = c.MinMinutes
	}
	return m
}

// SynthesizeRoutes maps distance-sorted facilities to route records.
// The first record is the primary route.
func SynthesizeRoutes(ranked []RankedFacility, cfg ETAConfig) []domain.RouteRecord {
	routes := make([]domain.RouteRecord, 0, len(ranked))
	for i, r := range ranked {
		routes = append(routes, domain.RouteRecord{
			ID:            "route" + strconv.Itoa(i+1),
			Facility:      r.Facility,
			DistanceKm:    r.DistanceKm,
			ETAMinutes:    cfg.EstimateMinutes(r.DistanceKm),
			TrafficStatus: cfg.TrafficStatus,
			IsPrimary:     i == 0,
		})
	}
	return routes
}
