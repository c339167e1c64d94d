package services

import (
	"errors"
	"math"
	"mediroute-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func facility(id string, lat, lon float64) domain.Facility {
	return domain.Facility{ID: id, Name: id, Address: id + " street", Latitude: lat, Longitude: lon}
}

func TestMergeCandidatesDedupesByID(t *testing.T) {
	a, b, c := facility("a", 1, 1), facility("b", 2, 2), facility("c", 3, 3)

	got, err := MergeCandidates([]domain.Facility{a, b}, []domain.Facility{b, c})
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, f := range got {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestMergeCandidatesLaterRecordWinsKeepsFirstPosition(t *testing.T) {
	first := facility("x", 1, 1)
	other := facility("y", 2, 2)
	later := first
	later.Name = "renamed"

	got, err := MergeCandidates([]domain.Facility{first, other}, []domain.Facility{later})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "renamed", got[0].Name)
	assert.Equal(t, "y", got[1].ID)
}

func TestMergeCandidatesEmpty(t *testing.T) {
	_, err := MergeCandidates([]domain.Facility{}, nil)
	assert.True(t, errors.Is(err, domain.ErrNoFacilitiesFound))

	_, err = MergeCandidates()
	assert.ErrorIs(t, err, domain.ErrNoFacilitiesFound)
}

func TestRankByDistanceSortedPermutation(t *testing.T) {
	user := domain.Coordinates{Lat: 0, Lon: 0}
	in := []domain.Facility{
		facility("far", 0, 3),
		facility("near", 0, 1),
		facility("mid", 0, 2),
	}

	got := RankByDistance(user, in)
	require.Len(t, got, 3)
	assert.Equal(t, "near", got[0].Facility.ID)
	assert.Equal(t, "mid", got[1].Facility.ID)
	assert.Equal(t, "far", got[2].Facility.ID)
	assert.InDelta(t, 111.1949, got[0].DistanceKm, 0.001)

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].DistanceKm, got[i].DistanceKm)
	}
	// input is untouched
	assert.Equal(t, "far", in[0].ID)
}

func TestRankByDistanceTiesKeepInputOrder(t *testing.T) {
	user := domain.Coordinates{Lat: 10, Lon: 10}
	in := []domain.Facility{
		facility("east", 10, 11),
		facility("west", 10, 9),
		facility("here", 10, 10),
	}

	got := RankByDistance(user, in)
	assert.Equal(t, "here", got[0].Facility.ID)
	assert.Equal(t, "east", got[1].Facility.ID)
	assert.Equal(t, "west", got[2].Facility.ID)
	assert.Equal(t, got[1].DistanceKm, got[2].DistanceKm)
}

func TestETAConfigEstimateMinutes(t *testing.T) {
	cfg := DefaultETAConfig()

	tests := []struct {
		km   float64
		want int
	}{
		{0, 5},
		{0.4589, 6},
		{1.9783, 9},
		{10, 25},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.EstimateMinutes(tt.km), "km=%v", tt.km)
	}

	floor := ETAConfig{KmPerMinute: 1, BufferMinutes: 0, MinMinutes: 3}
	assert.Equal(t, 3, floor.EstimateMinutes(0.2))

	zeroSpeed := ETAConfig{BufferMinutes: 5, MinMinutes: 3}
	assert.Equal(t, 7, zeroSpeed.EstimateMinutes(1))
}

func TestSynthesizeRoutesSinglePrimary(t *testing.T) {
	ranked := RankByDistance(domain.Coordinates{Lat: 0, Lon: 0}, []domain.Facility{
		facility("b", 0, 0.02),
		facility("a", 0, 0.01),
		facility("c", 0, 0.03),
	})

	routes := SynthesizeRoutes(ranked, DefaultETAConfig())
	require.Len(t, routes, 3)

	primaries := 0
	minDist := math.Inf(1)
	for _, r := range routes {
		if r.IsPrimary {
			primaries++
		}
		minDist = math.Min(minDist, r.DistanceKm)
		assert.GreaterOrEqual(t, r.ETAMinutes, 3)
		assert.Equal(t, "Moderate traffic", r.TrafficStatus)
	}
	assert.Equal(t, 1, primaries)
	assert.True(t, routes[0].IsPrimary)
	assert.Equal(t, minDist, routes[0].DistanceKm)
	assert.Equal(t, "route1", routes[0].ID)
	assert.Equal(t, "route3", routes[2].ID)
	assert.Equal(t, "a", routes[0].Facility.ID)
}

func TestSynthesizeRoutesEmpty(t *testing.T) {
	assert.Empty(t, SynthesizeRoutes(nil, DefaultETAConfig()))
}
