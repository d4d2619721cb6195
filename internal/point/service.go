package point

import (
	"context"
	"time"

	"github.com/davisdeatonphotography/dawarich/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Point) (Point, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO points (latitude, longitude, timestamp, altitude, velocity, battery, topic, tracker_id, import_id, user_id, raw_data)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at
	`, input.Latitude, input.Longitude, input.Timestamp, input.Altitude, input.Velocity, input.Battery,
		input.Topic, input.TrackerID, nullIfEmpty(input.ImportID), nullIfEmpty(input.UserID), input.RawData)
	if err := row.Scan(&input.ID, &input.CreatedAt); err != nil {
		return Point{}, err
	}
	return input, nil
}

// Range returns points with a timestamp in [from, to], in chronological
// order. A zero `to` means "until now".
func (s *Service) Range(ctx context.Context, from, to time.Time) ([]Point, error) {
	if to.IsZero() {
		to = time.Now()
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, latitude, longitude, timestamp, altitude, velocity, battery,
		       COALESCE(topic,''), COALESCE(tracker_id,''), COALESCE(import_id::text,''), COALESCE(user_id::text,''), raw_data, created_at
		FROM points
		WHERE timestamp BETWEEN $1 AND $2
		ORDER BY timestamp
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.ID, &p.Latitude, &p.Longitude, &p.Timestamp, &p.Altitude, &p.Velocity, &p.Battery,
			&p.Topic, &p.TrackerID, &p.ImportID, &p.UserID, &p.RawData, &p.CreatedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *Service) CountByImport(ctx context.Context, importID string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM points WHERE import_id=$1`, importID).Scan(&count)
	return count, err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
