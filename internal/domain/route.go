package domain

import "fmt"

// RouteRecord is a ranked facility annotated with distance and time estimates.
// Exactly one record in a ranking pass is primary: the nearest one.
// Records are built fresh per query and never mutated afterwards.
type RouteRecord struct {
	ID            string
	Facility      Facility
	DistanceKm    float64
	ETAMinutes    int
	TrafficStatus string
	IsPrimary     bool
}

// DistanceText renders the distance as "X.XX km".
func (r RouteRecord) DistanceText() string {
	return fmt.Sprintf("%.2f km", r.DistanceKm)
}

// ETAText renders the estimate as "N mins".
func (r RouteRecord) ETAText() string {
	return fmt.Sprintf("%d mins", r.ETAMinutes)
}
