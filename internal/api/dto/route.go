package dto

import (
	"mediroute-service/internal/domain"
	"net/url"
	"strconv"
	"strings"
)

type RouteRequest struct {
	EmergencyType string   `json:"emergency_type"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Address       string   `json:"address"`
}

// Location resolves the request into a domain location. Coordinates without
// an address get the "Coords: lat, lon" label.
func (r RouteRequest) Location() domain.UserLocation {
	return LocationRequest{Latitude: r.Latitude, Longitude: r.Longitude, Address: r.Address}.Location()
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
}

func (l LocationRequest) Location() domain.UserLocation {
	if l.Latitude != nil && l.Longitude != nil {
		return domain.NewUserLocation(*l.Latitude, *l.Longitude, l.Address)
	}
	return domain.UserLocation{Latitude: l.Latitude, Longitude: l.Longitude, Address: strings.TrimSpace(l.Address)}
}

type FacilityResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RouteResponse struct {
	ID            string           `json:"id"`
	Hospital      FacilityResponse `json:"hospital"`
	Distance      string           `json:"distance"`
	DistanceKm    float64          `json:"distance_km"`
	Time          string           `json:"time"`
	ETAMinutes    int              `json:"eta_minutes"`
	TrafficStatus string           `json:"traffic_status"`
	IsPrimary     bool             `json:"is_primary"`
	NavigateURL   string           `json:"navigate_url"`
	CallURL       string           `json:"call_url,omitempty"`
}

type ListRoutesResponse struct {
	EmergencyType string          `json:"emergency_type"`
	Location      string          `json:"location"`
	Routes        []RouteResponse `json:"routes"`
}

func NewRouteResponse(r domain.RouteRecord) RouteResponse {
	f := r.Facility
	res := RouteResponse{
		ID: r.ID,
		Hospital: FacilityResponse{
			ID:        f.ID,
			Name:      f.Name,
			Address:   f.Address,
			Phone:     f.Phone,
			Latitude:  f.Latitude,
			Longitude: f.Longitude,
		},
		Distance:      r.DistanceText(),
		DistanceKm:    r.DistanceKm,
		Time:          r.ETAText(),
		ETAMinutes:    r.ETAMinutes,
		TrafficStatus: r.TrafficStatus,
		IsPrimary:     r.IsPrimary,
		NavigateURL:   NavigateURL(f),
	}
	if p := strings.TrimSpace(f.Phone); p != "" {
		res.CallURL = "tel:" + p
	}
	return res
}

// Record converts a route echoed back by a client into a domain record.
func (r RouteResponse) Record() domain.RouteRecord {
	return domain.RouteRecord{
		ID: r.ID,
		Facility: domain.Facility{
			ID:        r.Hospital.ID,
			Name:      r.Hospital.Name,
			Address:   r.Hospital.Address,
			Phone:     r.Hospital.Phone,
			Latitude:  r.Hospital.Latitude,
			Longitude: r.Hospital.Longitude,
		},
		DistanceKm:    r.DistanceKm,
		ETAMinutes:    r.ETAMinutes,
		TrafficStatus: r.TrafficStatus,
		IsPrimary:     r.IsPrimary,
	}
}

// NavigateURL builds a driving-directions link. Coordinates are used unless
// either is zero, in which case the address is used.
func NavigateURL(f domain.Facility) string {
	var dest string
	if f.Latitude != 0 && f.Longitude != 0 {
		dest = strconv.FormatFloat(f.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(f.Longitude, 'f', -1, 64)
	} else {
		dest = strings.ReplaceAll(url.QueryEscape(f.Address), "+", "%20")
	}
	return "https://www.google.com/maps/dir/?api=1&destination=" + dest + "&travelmode=driving"
}

type SummaryRequest struct {
	EmergencyType string           `json:"emergency_type"`
	Location      *LocationRequest `json:"location"`
	Routes        []RouteResponse  `json:"routes"`
}
