package dto

import "time"

type SOSRequest struct {
	Confirmed     bool     `json:"confirmed"`
	EmergencyType string   `json:"emergency_type"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Address       string   `json:"address"`
}

type SOSResponse struct {
	ID       string    `json:"id"`
	Status   string    `json:"status"`
	SentAt   time.Time `json:"sent_at"`
	Location string    `json:"location"`
	Precise  bool      `json:"precise"`
}
