package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"mediroute-service/internal/domain"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type searchResult struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
}

// fetch runs one bounded /search query for an amenity category.
func (s *NominatimSearcher) fetch(
	ctx context.Context,
	category string,
	box domain.BoundingBox,
) ([]domain.Facility, error) {
	endpoint := s.baseURL + "/search"

	resp, err := s.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := s.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("format", "json")
		q.Set("bounded", "1")
		q.Set("limit", strconv.Itoa(s.limit))
		q.Set("viewbox", box.ViewBox())
		q.Set("amenity", category)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]domain.Facility, 0, len(decoded))
	for _, r := range decoded {
		f, ok := toFacility(r)
		if !ok {
			continue
		}
		out = append(out, f)
		if len(out) == s.limit {
			break
		}
	}

	return out, nil
}

// toFacility maps one search hit. Hits without a name or with coordinates
// that are unparseable, non-finite or out of range are skipped.
func toFacility(r searchResult) (domain.Facility, bool) {
	display := strings.TrimSpace(r.DisplayName)
	if display == "" {
		return domain.Facility{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	if err != nil {
		return domain.Facility{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if err != nil {
		return domain.Facility{}, false
	}
	if err := (domain.Coordinates{Lat: lat, Lon: lon}).Validate(); err != nil {
		return domain.Facility{}, false
	}

	name, _, _ := strings.Cut(display, ",")

	id := r.PlaceID.String()
	if id == "" {
		id = "place-" + uuid.NewString()
	}

	return domain.Facility{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Address:   display,
		Latitude:  lat,
		Longitude: lon,
	}, true
}
