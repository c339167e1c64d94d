package domain

import (
	"fmt"
	"strings"
)

// UserLocation is where help is needed. Latitude and Longitude are either
// both set or both nil; Address may be a manual entry or derived from coordinates.
type UserLocation struct {
	Latitude  *float64
	Longitude *float64
	Address   string
}

// NewUserLocation builds a location from coordinates. When address is blank
// it falls back to a "Coords: lat, lon" label.
func NewUserLocation(lat, lon float64, address string) UserLocation {
	address = strings.TrimSpace(address)
	if address == "" {
		address = fmt.Sprintf("Coords: %.4f, %.4f", lat, lon)
	}
	return UserLocation{Latitude: &lat, Longitude: &lon, Address: address}
}

func (l UserLocation) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Usable reports whether the location carries coordinates or an address.
func (l UserLocation) Usable() bool {
	return l.HasCoordinates() || strings.TrimSpace(l.Address) != ""
}

// Coordinates returns the validated coordinate pair.
// Both-or-neither is enforced here: a half-set pair is an invalid location.
func (l UserLocation) Coordinates() (Coordinates, error) {
	if (l.Latitude == nil) != (l.Longitude == nil) {
		return Coordinates{}, fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidLocation)
	}
	if !l.HasCoordinates() {
		return Coordinates{}, fmt.Errorf("%w: latitude and longitude are required", ErrInvalidLocation)
	}

	c := Coordinates{Lat: *l.Latitude, Lon: *l.Longitude}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

// Describe resolves the display string: address first, then coordinates
// to four decimals, then "Unavailable".
func (l *UserLocation) Describe() string {
	if l == nil {
		return "Unavailable"
	}
	if a := strings.TrimSpace(l.Address); a != "" {
		return a
	}
	if l.HasCoordinates() {
		return fmt.Sprintf("Coordinates: %.4f, %.4f", *l.Latitude, *l.Longitude)
	}
	return "Unavailable"
}
