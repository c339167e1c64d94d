package services

import (
	"cmp"
	"mediroute-service/internal/domain"
	"slices"
)

// RankedFacility is a facility annotated with its distance from the user.
type RankedFacility struct {
	Facility   domain.Facility
	DistanceKm float64
}

// RankByDistance orders facilities by great-circle distance from user,
// nearest first. The sort is stable: equal distances keep input order.
func RankByDistance(user domain.Coordinates, facilities []domain.Facility) []RankedFacility {
	out := make([]RankedFacility, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, RankedFacility{
			Facility:   f,
			DistanceKm: domain.Haversine(user, f.Coordinates()),
		})
	}

	slices.SortStableFunc(out, func(a, b RankedFacility) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})
	return out
}
