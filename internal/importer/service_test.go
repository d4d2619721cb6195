package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/davisdeatonphotography/dawarich/internal/point"

	"github.com/pashagolub/pgxmock/v3"
)

const timelineDoc = `{
	"timelineObjects": [
		{
			"placeVisit": {
				"location": {"latitudeE7": 525145680, "longitudeE7": 133501110},
				"duration": {"startTimestamp": "2023-06-01T10:00:00Z", "endTimestamp": "2023-06-01T11:00:00Z"}
			}
		},
		{
			"activitySegment": {
				"startLocation": {"latitudeE7": 525000000, "longitudeE7": 134000000},
				"duration": {"startTimestamp": "2023-06-01T12:00:00Z", "endTimestamp": "2023-06-01T12:30:00Z"}
			}
		}
	]
}`

type stubCreator struct {
	created []point.Point
	err     error
	failOn  int // 1-based call that returns err; 0 fails every call when err is set
}

func (s *stubCreator) Create(_ context.Context, p point.Point) (point.Point, error) {
	if s.err != nil && (s.failOn == 0 || len(s.created)+1 == s.failOn) {
		return point.Point{}, s.err
	}
	s.created = append(s.created, p)
	return p, nil
}

type stubHub struct {
	payloads [][]byte
}

func (s *stubHub) Broadcast(_ string, payload []byte) {
	s.payloads = append(s.payloads, payload)
}

func TestImportStoresRecords(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO imports`).
		WithArgs(pgxmock.AnyArg(), "june trip", sourceGoogleTimeline, 2, "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`UPDATE imports SET points_count`).
		WithArgs(2, statusCompleted, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	creator := &stubCreator{}
	hub := &stubHub{}
	svc := NewService(mock, creator, hub)

	imp, err := svc.Import(context.Background(), "june trip", "user-1", []byte(timelineDoc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imp.RawPointsCount != 2 || imp.PointsCount != 2 {
		t.Fatalf("unexpected counts: %+v", imp)
	}
	if imp.Status != statusCompleted {
		t.Fatalf("unexpected status: %q", imp.Status)
	}
	if len(creator.created) != 2 {
		t.Fatalf("expected 2 points created, got %d", len(creator.created))
	}

	first := creator.created[0]
	if first.Latitude != 52.514568 || first.Longitude != 13.350111 {
		t.Fatalf("unexpected first point: %+v", first)
	}
	if first.Topic != pointTopic || first.TrackerID != pointTrackerID {
		t.Fatalf("unexpected point provenance: %+v", first)
	}
	if first.ImportID != imp.ID || first.UserID != "user-1" {
		t.Fatalf("unexpected point ownership: %+v", first)
	}
	if len(first.RawData) == 0 {
		t.Fatalf("expected raw data retained")
	}

	if len(hub.payloads) == 0 {
		t.Fatalf("expected completion progress broadcast")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportMalformedStoresNothing(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	creator := &stubCreator{}
	svc := NewService(mock, creator, nil)

	if _, err := svc.Import(context.Background(), "bad", "user-1", []byte(`{"foo":1}`)); err == nil {
		t.Fatalf("expected error for missing timelineObjects")
	}
	if len(creator.created) != 0 {
		t.Fatalf("expected no points created")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected db activity: %v", err)
	}
}

func TestImportPointCreateError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO imports`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`UPDATE imports SET points_count`).
		WithArgs(0, statusFailed, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService(mock, &stubCreator{err: errQuery}, nil)
	if _, err := svc.Import(context.Background(), "x", "user-1", []byte(timelineDoc)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestImportFailureRecordsPartialState(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO imports`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`UPDATE imports SET points_count`).
		WithArgs(1, statusFailed, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	creator := &stubCreator{err: errQuery, failOn: 2}
	svc := NewService(mock, creator, nil)
	if _, err := svc.Import(context.Background(), "x", "user-1", []byte(timelineDoc)); err == nil {
		t.Fatalf("expected error")
	}
	if len(creator.created) != 1 {
		t.Fatalf("expected one point persisted before the failure, got %d", len(creator.created))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportInsertError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO imports`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errQuery)

	svc := NewService(mock, &stubCreator{}, nil)
	if _, err := svc.Import(context.Background(), "x", "user-1", []byte(timelineDoc)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetImport(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, source, raw_points_count, points_count`).
		WithArgs("import-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "source", "raw_points_count", "points_count", "status", "user_id", "created_at"}).
			AddRow("import-1", "june trip", sourceGoogleTimeline, 10, 10, statusCompleted, "user-1", time.Now()))

	svc := NewService(mock, &stubCreator{}, nil)
	imp, err := svc.Get(context.Background(), "import-1")
	if err != nil {
		t.Fatalf("get import: %v", err)
	}
	if imp.Name != "june trip" || imp.PointsCount != 10 || imp.Status != statusCompleted {
		t.Fatalf("unexpected import: %+v", imp)
	}
}

var errQuery = errors.New("query error")
