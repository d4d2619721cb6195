package point

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func TestCreatePoint(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	ts := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO points`).
		WithArgs(52.5, 13.4, ts, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			"Google Maps Timeline Export", "google-maps-timeline-export", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	svc := NewService(mock)
	created, err := svc.Create(context.Background(), Point{
		Latitude:  52.5,
		Longitude: 13.4,
		Timestamp: ts,
		Topic:     "Google Maps Timeline Export",
		TrackerID: "google-maps-timeline-export",
		ImportID:  "import-1",
	})
	if err != nil {
		t.Fatalf("create point: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id returned")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreatePointError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO points`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errQuery)

	svc := NewService(mock)
	if _, err := svc.Create(context.Background(), Point{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRange(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, latitude, longitude, timestamp`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"id", "latitude", "longitude", "timestamp", "altitude", "velocity", "battery", "topic", "tracker_id", "import_id", "user_id", "raw_data", "created_at"}).
			AddRow(int64(1), 52.5, 13.4, from, nil, nil, nil, "", "", "", "", nil, time.Now()).
			AddRow(int64(2), 52.6, 13.5, from.Add(time.Hour), nil, nil, nil, "", "", "", "", nil, time.Now()))

	svc := NewService(mock)
	points, err := svc.Range(context.Background(), from, to)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Latitude != 52.5 || points[1].Longitude != 13.5 {
		t.Fatalf("unexpected points")
	}
}

func TestRangeError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, latitude, longitude, timestamp`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errQuery)

	svc := NewService(mock)
	if _, err := svc.Range(context.Background(), time.Time{}, time.Time{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCountByImport(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM points WHERE import_id`).
		WithArgs("import-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	svc := NewService(mock)
	count, err := svc.CountByImport(context.Background(), "import-1")
	if err != nil || count != 42 {
		t.Fatalf("count by import: %v (%d)", err, count)
	}
}

func TestFogCircles(t *testing.T) {
	points := []Point{
		{Latitude: 52.5, Longitude: 13.4},
		{Latitude: 52.6, Longitude: 13.5},
	}
	circles := FogCircles(points, 100)
	if len(circles) != 2 {
		t.Fatalf("expected 2 circles")
	}
	for i, c := range circles {
		if c.RadiusM != 100 {
			t.Fatalf("circle %d: unexpected radius %v", i, c.RadiusM)
		}
		if c.Latitude != points[i].Latitude || c.Longitude != points[i].Longitude {
			t.Fatalf("circle %d: unexpected center", i)
		}
	}
	if got := FogCircles(nil, 100); len(got) != 0 {
		t.Fatalf("expected no circles for no points")
	}
}

var errQuery = errors.New("query error")
