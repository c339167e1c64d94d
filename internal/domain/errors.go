package domain

import "errors"

var (
	// ErrInvalidLocation is returned when coordinates are missing or malformed.
	ErrInvalidLocation = errors.New("invalid user location")

	// ErrNoFacilitiesFound is returned when every category query came back empty.
	ErrNoFacilitiesFound = errors.New("no nearby facilities found")

	// ErrUpstreamUnavailable is returned only when escalation is enabled and
	// every category query failed.
	ErrUpstreamUnavailable = errors.New("place search upstream unavailable")

	ErrUnknownCategory = errors.New("unknown emergency type")
	ErrSOSNotConfirmed = errors.New("sos alert not confirmed")
)
