package point

import (
	"encoding/json"
	"time"
)

// Point is one normalized location sample. Altitude, velocity and battery
// are presentation metadata and may be absent; RawData keeps the original
// source entry untouched for traceability.
type Point struct {
	ID        int64           `json:"id"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Timestamp time.Time       `json:"timestamp"`
	Altitude  *float64        `json:"altitude,omitempty"`
	Velocity  *float64        `json:"velocity,omitempty"`
	Battery   *float64        `json:"battery,omitempty"`
	Topic     string          `json:"topic,omitempty"`
	TrackerID string          `json:"tracker_id,omitempty"`
	ImportID  string          `json:"import_id,omitempty"`
	UserID    string          `json:"user_id,omitempty"`
	RawData   json.RawMessage `json:"raw_data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Circle is a fog-of-war clearing around one point. The frontend owns all
// rendering; the API only supplies geometry.
type Circle struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusM   float64 `json:"radius_meters"`
}
