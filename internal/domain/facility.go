package domain

// Facility is a medical location (hospital or clinic) returned by a place search.
// Two facilities with the same ID are the same facility.
type Facility struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (f Facility) Coordinates() Coordinates {
	return Coordinates{Lat: f.Latitude, Lon: f.Longitude}
}
