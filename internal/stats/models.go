package stats

// DayStat aggregates one calendar day of tracked movement.
type DayStat struct {
	Date       string  `json:"date"`
	DistanceM  float64 `json:"distance_meters"`
	PointCount int     `json:"point_count"`
}

type Summary struct {
	TotalDistanceM float64   `json:"total_distance_meters"`
	TotalPoints    int       `json:"total_points"`
	Days           []DayStat `json:"days"`
}
