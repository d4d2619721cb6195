package trip

import (
	"context"
	"time"

	"github.com/davisdeatonphotography/dawarich/internal/point"
)

// PointSource supplies the ordered point sequence to segment; satisfied by
// *point.Service.
type PointSource interface {
	Range(ctx context.Context, from, to time.Time) ([]point.Point, error)
}

type Service struct {
	points PointSource
}

func NewService(points PointSource) *Service {
	return &Service{points: points}
}

// List loads the points of a time range and segments them with the given
// thresholds.
func (s *Service) List(ctx context.Context, from, to time.Time, maxDistanceM, maxTimeGapMinutes float64) ([]Trip, error) {
	points, err := s.points.Range(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return Segment(points, maxDistanceM, maxTimeGapMinutes)
}
