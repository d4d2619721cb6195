package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMalformedInput marks a document or entry whose shape does not
	// match the export format.
	ErrMalformedInput = errors.New("timeline: malformed input")
	// ErrBadTimestamp marks an entry whose duration.startTimestamp cannot
	// be parsed.
	ErrBadTimestamp = errors.New("timeline: bad timestamp")
)

const coordinateScale = 1e7

// Parse normalizes a Semantic Location History export document into a flat,
// order-preserving list of records. Parsing is strict: the first malformed
// entry or unparsable timestamp fails the whole document, so a bad import
// file never yields a silently partial result.
func Parse(data []byte) ([]Record, error) {
	var doc struct {
		TimelineObjects *[]json.RawMessage `json:"timelineObjects"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if doc.TimelineObjects == nil {
		return nil, fmt.Errorf("%w: missing timelineObjects list", ErrMalformedInput)
	}

	var records []Record
	for i, raw := range *doc.TimelineObjects {
		extracted, err := ExtractRecords(raw)
		if err != nil {
			return nil, fmt.Errorf("timelineObjects[%d]: %w", i, err)
		}
		records = append(records, extracted...)
	}
	return records, nil
}

// ExtractRecords normalizes a single export entry into zero or more records.
// An activity segment yields its start location when present, otherwise one
// record per waypoint of its path; a place visit yields its location. An
// entry carrying neither variant, or a segment with neither a start location
// nor waypoints, is skipped.
func ExtractRecords(raw json.RawMessage) ([]Record, error) {
	var obj Object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	switch {
	case obj.ActivitySegment != nil:
		return extractActivitySegment(obj.ActivitySegment, raw)
	case obj.PlaceVisit != nil:
		return extractPlaceVisit(obj.PlaceVisit, raw)
	default:
		return nil, nil
	}
}

func extractActivitySegment(seg *ActivitySegment, raw json.RawMessage) ([]Record, error) {
	switch {
	case seg.StartLocation.populated():
		lat, lng, err := seg.StartLocation.coordinates()
		if err != nil {
			return nil, fmt.Errorf("activitySegment.startLocation: %w", err)
		}
		ts, err := parseTimestamp(seg.Duration.StartTimestamp)
		if err != nil {
			return nil, err
		}
		return []Record{{Latitude: lat, Longitude: lng, Timestamp: ts, Raw: raw}}, nil

	case seg.WaypointPath != nil && len(seg.WaypointPath.Waypoints) > 0:
		// Every waypoint shares the segment's start timestamp; the path
		// carries none of its own.
		ts, err := parseTimestamp(seg.Duration.StartTimestamp)
		if err != nil {
			return nil, err
		}
		records := make([]Record, 0, len(seg.WaypointPath.Waypoints))
		for i, wp := range seg.WaypointPath.Waypoints {
			if wp.LatE7 == nil || wp.LngE7 == nil {
				return nil, fmt.Errorf("%w: waypoint %d missing coordinates", ErrMalformedInput, i)
			}
			records = append(records, Record{
				Latitude:  float64(*wp.LatE7) / coordinateScale,
				Longitude: float64(*wp.LngE7) / coordinateScale,
				Timestamp: ts,
				Raw:       raw,
			})
		}
		return records, nil

	default:
		return nil, nil
	}
}

func extractPlaceVisit(visit *PlaceVisit, raw json.RawMessage) ([]Record, error) {
	if !visit.Location.populated() {
		return nil, fmt.Errorf("%w: placeVisit missing location", ErrMalformedInput)
	}
	lat, lng, err := visit.Location.coordinates()
	if err != nil {
		return nil, fmt.Errorf("placeVisit.location: %w", err)
	}
	ts, err := parseTimestamp(visit.Duration.StartTimestamp)
	if err != nil {
		return nil, err
	}
	return []Record{{Latitude: lat, Longitude: lng, Timestamp: ts, Raw: raw}}, nil
}

// populated mirrors the export's habit of shipping empty location objects:
// a location counts only when it carries at least one coordinate field.
func (l *Location) populated() bool {
	return l != nil && (l.LatitudeE7 != nil || l.LongitudeE7 != nil)
}

// coordinates converts the E7 pair to decimal degrees. A half-populated
// location is rejected instead of coercing the missing side to zero, which
// would fabricate a plausible-looking point near (0,0).
func (l *Location) coordinates() (float64, float64, error) {
	if l.LatitudeE7 == nil || l.LongitudeE7 == nil {
		return 0, 0, fmt.Errorf("%w: missing coordinate field", ErrMalformedInput)
	}
	return float64(*l.LatitudeE7) / coordinateScale, float64(*l.LongitudeE7) / coordinateScale, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty duration.startTimestamp", ErrBadTimestamp)
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Some exports omit the zone designator.
		ts, err = time.Parse("2006-01-02T15:04:05", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
		}
	}
	return ts, nil
}
