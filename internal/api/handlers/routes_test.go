package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mediroute-service/internal/adapters/geocode"
	"mediroute-service/internal/api/dto"
	"mediroute-service/internal/domain"
	"mediroute-service/internal/ports"
	"mediroute-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouteHandler(t *testing.T, searcher ports.PlaceSearcher) *RouteHandler {
	t.Helper()
	finder, err := services.NewRouteFinder(searcher, services.RouteFinderOptions{
		Categories:               []string{"hospital", "clinic"},
		EscalateUpstreamFailures: true,
	})
	require.NoError(t, err)
	return &RouteHandler{
		Finder:  finder,
		Tracker: services.NewRequestTracker(),
		Now:     func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) },
	}
}

func nycSearcher() *geocode.MockPlaceSearcher {
	return geocode.NewMockPlaceSearcher(map[string][]domain.Facility{
		"hospital": {{ID: "h1", Name: "General Hospital", Address: "1 Main St", Phone: "+1 212 555 0199", Latitude: 40.73, Longitude: -74.00}},
		"clinic":   {{ID: "c1", Name: "Corner Clinic", Address: "2 Side St", Latitude: 40.71, Longitude: -74.01}},
	})
}

func TestRouteHandlerFind(t *testing.T) {
	h := newRouteHandler(t, nycSearcher())

	body := `{"emergency_type":"heart","latitude":40.7128,"longitude":-74.006}`
	req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Find(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res dto.ListRoutesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Equal(t, "heart", res.EmergencyType)
	assert.Equal(t, "Coords: 40.7128, -74.0060", res.Location)
	require.Len(t, res.Routes, 2)

	primary := res.Routes[0]
	assert.True(t, primary.IsPrimary)
	assert.Equal(t, "Corner Clinic", primary.Hospital.Name)
	assert.Equal(t, "0.46 km", primary.Distance)
	assert.Equal(t, "6 mins", primary.Time)
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=40.71,-74.01&travelmode=driving", primary.NavigateURL)
	assert.Empty(t, primary.CallURL)

	alt := res.Routes[1]
	assert.False(t, alt.IsPrimary)
	assert.Equal(t, "1.98 km", alt.Distance)
	assert.Equal(t, "9 mins", alt.Time)
	assert.Equal(t, "tel:+1 212 555 0199", alt.CallURL)
}

func TestRouteHandlerFindErrors(t *testing.T) {
	failing := geocode.NewMockPlaceSearcher(nil)
	failing.FailCategory("hospital", errors.New("down"))
	failing.FailCategory("clinic", errors.New("down"))

	tests := []struct {
		name     string
		searcher ports.PlaceSearcher
		method   string
		body     string
		want     int
	}{
		{"wrong method", nycSearcher(), http.MethodGet, "", http.StatusMethodNotAllowed},
		{"bad json", nycSearcher(), http.MethodPost, `{`, http.StatusBadRequest},
		{"unknown field", nycSearcher(), http.MethodPost, `{"emergency_type":"heart","zoom":3}`, http.StatusBadRequest},
		{"two objects", nycSearcher(), http.MethodPost, `{"emergency_type":"heart"}{}`, http.StatusBadRequest},
		{"unknown category", nycSearcher(), http.MethodPost, `{"emergency_type":"flu","latitude":1,"longitude":1}`, http.StatusBadRequest},
		{"address only", nycSearcher(), http.MethodPost, `{"emergency_type":"heart","address":"5th Ave"}`, http.StatusBadRequest},
		{"out of range", nycSearcher(), http.MethodPost, `{"emergency_type":"heart","latitude":91,"longitude":1}`, http.StatusBadRequest},
		{"nothing nearby", geocode.NewMockPlaceSearcher(nil), http.MethodPost, `{"emergency_type":"heart","latitude":1,"longitude":1}`, http.StatusNotFound},
		{"upstream down", failing, http.MethodPost, `{"emergency_type":"heart","latitude":1,"longitude":1}`, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouteHandler(t, tt.searcher)
			req := httptest.NewRequest(tt.method, "/routes", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Find(rec, req)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			if tt.want == http.StatusMethodNotAllowed {
				assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
			}
		})
	}
}

// blockingSearcher parks until its context is cancelled.
type blockingSearcher struct {
	started chan struct{}
}

func (b *blockingSearcher) SearchPlaces(ctx context.Context, _ domain.Coordinates, _ string) ([]domain.Facility, error) {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRouteHandlerFindSuperseded(t *testing.T) {
	blocker := &blockingSearcher{started: make(chan struct{}, 1)}
	h := newRouteHandler(t, blocker)

	body := `{"emergency_type":"stroke","latitude":1,"longitude":1}`
	first := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(body))
	first.Header.Set(SessionHeader, "s-1")
	firstRec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Find(firstRec, first)
	}()
	<-blocker.started

	// the second request on the same session cancels the first
	_, finish := h.Tracker.Begin(context.Background(), "s-1")
	<-done
	assert.True(t, finish())

	assert.Equal(t, http.StatusConflict, firstRec.Code)
	assert.Contains(t, firstRec.Body.String(), "request superseded")
}

func TestRouteHandlerSummary(t *testing.T) {
	h := newRouteHandler(t, nycSearcher())

	body := `{
		"emergency_type": "allergy",
		"location": {"latitude": 40.7128, "longitude": -74.006},
		"routes": [
			{"id":"route1","hospital":{"id":"c1","name":"Corner Clinic","address":"2 Side St","latitude":40.71,"longitude":-74.01},
			 "distance":"0.46 km","distance_km":0.4589,"time":"6 mins","eta_minutes":6,"traffic_status":"Moderate traffic","is_primary":true,
			 "navigate_url":"x"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/routes/summary", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Summary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="MediRoute_Summary_allergy_2026-02-03.txt"`, rec.Header().Get("Content-Disposition"))

	text := rec.Body.String()
	assert.Contains(t, text, "Generated: 2026-02-03 04:05:06 UTC\n")
	assert.Contains(t, text, "Emergency Type: allergy\n")
	assert.Contains(t, text, "Your Location: Coords: 40.7128, -74.0060\n")
	assert.Contains(t, text, "PRIMARY ROUTE:\n  Hospital: Corner Clinic\n")
	assert.Contains(t, text, "  Distance: 0.46 km\n")
	assert.Contains(t, text, "  Phone: N/A\n")
}

func TestRouteHandlerSummaryNoRoutes(t *testing.T) {
	h := newRouteHandler(t, nycSearcher())

	req := httptest.NewRequest(http.MethodPost, "/routes/summary", strings.NewReader(`{"routes":[]}`))
	rec := httptest.NewRecorder()

	h.Summary(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no route data to download")
}

func TestRouteHandlerFindCancelled(t *testing.T) {
	h := newRouteHandler(t, nycSearcher())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body := `{"emergency_type":"heart","latitude":40.7128,"longitude":-74.006}`
	req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()

	h.Find(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "request cancelled")
}
