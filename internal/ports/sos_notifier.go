package ports

import (
	"context"
	"time"
)

// SOSAlert is the payload handed to an SOSNotifier.
type SOSAlert struct {
	ID            string    `json:"id"`
	SentAt        time.Time `json:"sent_at"`
	EmergencyType string    `json:"emergency_type,omitempty"`
	Location      string    `json:"location"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Precise       bool      `json:"precise"`
}

// Fire-and-forget delivery of an SOS alert to whoever dispatches help.
type SOSNotifier interface {
	Notify(ctx context.Context, alert SOSAlert) error
}
