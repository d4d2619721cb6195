package importer

import "time"

// Import is one uploaded timeline export. RawPointsCount is the number of
// records extracted from the document, PointsCount the number persisted.
type Import struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Source         string    `json:"source"`
	RawPointsCount int       `json:"raw_points_count"`
	PointsCount    int       `json:"points_count"`
	Status         string    `json:"status"`
	UserID         string    `json:"user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Progress is pushed to watchers while an import is running.
type Progress struct {
	ImportID  string `json:"import_id"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
}
