package trip

import (
	"errors"
	"fmt"
	"math"

	"github.com/davisdeatonphotography/dawarich/internal/point"
	"github.com/davisdeatonphotography/dawarich/internal/shared/geo"
	"github.com/davisdeatonphotography/dawarich/internal/shared/humanize"
)

// ErrUnorderedPoints marks segmentation input whose timestamps are not
// non-decreasing. Segmentation would silently produce wrong trips otherwise.
var ErrUnorderedPoints = errors.New("trip: points not in chronological order")

// Segment partitions an ordered point sequence into trips. A new trip starts
// whenever the distance or the time gap to the previous point strictly
// exceeds its threshold, so equality at a threshold does not split. Every
// input point lands in exactly one trip and input order is preserved.
//
// An empty input yields no trips. Non-positive thresholds are a valid,
// degenerate configuration producing one trip per point.
func Segment(points []point.Point, maxDistanceM, maxTimeGapMinutes float64) ([]Trip, error) {
	for i := 1; i < len(points); i++ {
		if points[i].Timestamp.Before(points[i-1].Timestamp) {
			return nil, fmt.Errorf("%w: index %d", ErrUnorderedPoints, i)
		}
	}

	var runs [][]point.Point
	var current []point.Point
	for _, p := range points {
		if len(current) == 0 {
			current = append(current, p)
			continue
		}
		last := current[len(current)-1]
		distance := geo.HaversineM(last.Latitude, last.Longitude, p.Latitude, p.Longitude)
		gapMinutes := p.Timestamp.Sub(last.Timestamp).Minutes()

		if distance > maxDistanceM || gapMinutes > maxTimeGapMinutes {
			runs = append(runs, current)
			current = []point.Point{p}
		} else {
			current = append(current, p)
		}
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}

	trips := make([]Trip, len(runs))
	for i, run := range runs {
		trips[i] = newTrip(run)
	}

	// Neighbor gaps are a windowed pass over the finalized list; trips hold
	// no references to each other.
	for i := range trips {
		if i > 0 {
			prev := runs[i-1]
			trips[i].GapToPrevious = gapBetween(prev[len(prev)-1], runs[i][0])
		}
		if i < len(trips)-1 {
			next := runs[i+1]
			trips[i].GapToNext = gapBetween(runs[i][len(runs[i])-1], next[0])
		}
	}
	return trips, nil
}

func newTrip(run []point.Point) Trip {
	start := run[0]
	end := run[len(run)-1]
	minutes := roundMinutes(start, end)
	return Trip{
		Points:          run,
		StartedAt:       start.Timestamp,
		EndedAt:         end.Timestamp,
		DurationMinutes: minutes,
		DurationHuman:   humanize.Minutes(minutes),
		DistanceM:       geo.HaversineM(start.Latitude, start.Longitude, end.Latitude, end.Longitude),
	}
}

func gapBetween(from, to point.Point) *Gap {
	minutes := roundMinutes(from, to)
	return &Gap{
		DistanceM:   geo.HaversineM(from.Latitude, from.Longitude, to.Latitude, to.Longitude),
		TimeMinutes: minutes,
		TimeHuman:   humanize.Minutes(minutes),
	}
}

func roundMinutes(from, to point.Point) int64 {
	return int64(math.Round(to.Timestamp.Sub(from.Timestamp).Minutes()))
}
