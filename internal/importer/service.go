package importer

import (
	"context"
	"encoding/json"

	"github.com/davisdeatonphotography/dawarich/internal/db"
	"github.com/davisdeatonphotography/dawarich/internal/point"
	"github.com/davisdeatonphotography/dawarich/internal/timeline"

	"github.com/google/uuid"
)

const (
	sourceGoogleTimeline = "google_semantic_history"
	pointTopic           = "Google Maps Timeline Export"
	pointTrackerID       = "google-maps-timeline-export"

	// progress is broadcast every progressEvery points and once at the end
	progressEvery = 100

	statusCompleted = "completed"
	statusFailed    = "failed"
)

type PointCreator interface {
	Create(ctx context.Context, p point.Point) (point.Point, error)
}

type Broadcaster interface {
	Broadcast(importID string, payload []byte)
}

type Service struct {
	db     db.Querier
	points PointCreator
	hub    Broadcaster
}

func NewService(db db.Querier, points PointCreator, hub Broadcaster) *Service {
	return &Service{db: db, points: points, hub: hub}
}

// Import parses a Google Semantic Location History document and persists
// every extracted record as a point. The document is parsed up front, so a
// malformed export stores nothing.
func (s *Service) Import(ctx context.Context, name, userID string, data []byte) (Import, error) {
	records, err := timeline.Parse(data)
	if err != nil {
		return Import{}, err
	}

	imp := Import{
		ID:             uuid.NewString(),
		Name:           name,
		Source:         sourceGoogleTimeline,
		RawPointsCount: len(records),
		UserID:         userID,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO imports (id, name, source, raw_points_count, user_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, imp.ID, imp.Name, imp.Source, imp.RawPointsCount, imp.UserID)
	if err := row.Scan(&imp.CreatedAt); err != nil {
		return Import{}, err
	}

	for i, rec := range records {
		_, err := s.points.Create(ctx, point.Point{
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
			Timestamp: rec.Timestamp,
			Topic:     pointTopic,
			TrackerID: pointTrackerID,
			ImportID:  imp.ID,
			UserID:    userID,
			RawData:   rec.Raw,
		})
		if err != nil {
			// keep the row honest about what made it in before the failure
			imp.Status = statusFailed
			_, _ = s.db.Exec(ctx, `UPDATE imports SET points_count=$1, status=$2 WHERE id=$3`,
				imp.PointsCount, imp.Status, imp.ID)
			return Import{}, err
		}
		imp.PointsCount++
		if (i+1)%progressEvery == 0 {
			s.broadcastProgress(imp.ID, imp.PointsCount, len(records))
		}
	}
	s.broadcastProgress(imp.ID, imp.PointsCount, len(records))

	imp.Status = statusCompleted
	_, err = s.db.Exec(ctx, `UPDATE imports SET points_count=$1, status=$2 WHERE id=$3`,
		imp.PointsCount, imp.Status, imp.ID)
	if err != nil {
		return Import{}, err
	}
	return imp, nil
}

func (s *Service) Get(ctx context.Context, id string) (Import, error) {
	var imp Import
	err := s.db.QueryRow(ctx, `
		SELECT id, name, source, raw_points_count, points_count, status, COALESCE(user_id::text,''), created_at
		FROM imports WHERE id=$1
	`, id).Scan(&imp.ID, &imp.Name, &imp.Source, &imp.RawPointsCount, &imp.PointsCount, &imp.Status, &imp.UserID, &imp.CreatedAt)
	if err != nil {
		return Import{}, err
	}
	return imp, nil
}

func (s *Service) broadcastProgress(importID string, processed, total int) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(Progress{ImportID: importID, Processed: processed, Total: total})
	if err != nil {
		return
	}
	s.hub.Broadcast(importID, payload)
}
