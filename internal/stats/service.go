package stats

import (
	"context"
	"time"

	"github.com/davisdeatonphotography/dawarich/internal/point"
	"github.com/davisdeatonphotography/dawarich/internal/shared/geo"
)

type PointSource interface {
	Range(ctx context.Context, from, to time.Time) ([]point.Point, error)
}

type Service struct {
	points PointSource
}

func NewService(points PointSource) *Service {
	return &Service{points: points}
}

// Summarize buckets points into UTC calendar days. Distance between two
// consecutive points counts toward the day of the later point, so a leg
// crossing midnight is not silently dropped.
func (s *Service) Summarize(ctx context.Context, from, to time.Time) (Summary, error) {
	points, err := s.points.Range(ctx, from, to)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	byDay := map[string]*DayStat{}
	var order []string

	for i, p := range points {
		day := p.Timestamp.UTC().Format("2006-01-02")
		stat, ok := byDay[day]
		if !ok {
			stat = &DayStat{Date: day}
			byDay[day] = stat
			order = append(order, day)
		}
		stat.PointCount++
		summary.TotalPoints++

		if i > 0 {
			prev := points[i-1]
			d := geo.HaversineM(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
			stat.DistanceM += d
			summary.TotalDistanceM += d
		}
	}

	for _, day := range order {
		summary.Days = append(summary.Days, *byDay[day])
	}
	return summary, nil
}
