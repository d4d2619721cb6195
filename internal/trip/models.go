package trip

import (
	"time"

	"github.com/davisdeatonphotography/dawarich/internal/point"
)

// Gap describes the jump between two adjacent trips: straight-line distance
// and time from the last point of one to the first point of the other.
type Gap struct {
	DistanceM   float64 `json:"distance_meters"`
	TimeMinutes int64   `json:"time_minutes"`
	TimeHuman   string  `json:"time_human,omitempty"`
}

// Trip is a maximal run of chronologically ordered points whose consecutive
// members stay within both segmentation thresholds. Trips are ephemeral view
// objects recomputed from the point sequence; they are never persisted.
type Trip struct {
	Points          []point.Point `json:"points"`
	StartedAt       time.Time     `json:"started_at"`
	EndedAt         time.Time     `json:"ended_at"`
	DurationMinutes int64         `json:"duration_minutes"`
	DurationHuman   string        `json:"duration_human,omitempty"`
	// DistanceM is the straight-line distance between the trip's first and
	// last point, matching what the route popup reports.
	DistanceM     float64 `json:"distance_meters"`
	GapToPrevious *Gap    `json:"gap_to_previous,omitempty"`
	GapToNext     *Gap    `json:"gap_to_next,omitempty"`
}

// Start returns the trip's first point.
func (t Trip) Start() point.Point {
	return t.Points[0]
}

// End returns the trip's last point.
func (t Trip) End() point.Point {
	return t.Points[len(t.Points)-1]
}
