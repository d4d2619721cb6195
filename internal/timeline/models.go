package timeline

import (
	"encoding/json"
	"time"
)

// Object is one entry of a Google Semantic Location History export.
// At most one of the two variants is populated in well-formed input.
type Object struct {
	ActivitySegment *ActivitySegment `json:"activitySegment,omitempty"`
	PlaceVisit      *PlaceVisit      `json:"placeVisit,omitempty"`
}

// ActivitySegment describes movement between two places. It carries either
// a start location or a path of intermediate waypoints.
type ActivitySegment struct {
	StartLocation *Location     `json:"startLocation,omitempty"`
	WaypointPath  *WaypointPath `json:"waypointPath,omitempty"`
	Duration      Duration      `json:"duration"`
}

// PlaceVisit describes a stationary visit to one place.
type PlaceVisit struct {
	Location *Location `json:"location,omitempty"`
	Duration Duration  `json:"duration"`
}

// Location holds coordinates encoded as integer degrees times 1e7.
type Location struct {
	LatitudeE7  *int64 `json:"latitudeE7,omitempty"`
	LongitudeE7 *int64 `json:"longitudeE7,omitempty"`
}

type WaypointPath struct {
	Waypoints []Waypoint `json:"waypoints"`
}

// Waypoint is one intermediate coordinate of a waypoint path. The path
// carries no per-waypoint timestamps in this format.
type Waypoint struct {
	LatE7 *int64 `json:"latE7,omitempty"`
	LngE7 *int64 `json:"lngE7,omitempty"`
}

type Duration struct {
	StartTimestamp string `json:"startTimestamp"`
	EndTimestamp   string `json:"endTimestamp,omitempty"`
}

// Record is one flat point extracted from an export entry. Raw retains the
// original entry untouched for traceability; waypoints of the same path
// share Raw and Timestamp but differ in coordinates.
type Record struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
	Raw       json.RawMessage
}
