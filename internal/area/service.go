package area

import (
	"context"

	"github.com/davisdeatonphotography/dawarich/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Area) (Area, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO areas (id, name, location, radius_m, user_id)
		VALUES ($1,$2, ST_SetSRID(ST_MakePoint($3,$4), 4326)::geography, $5, $6)
		RETURNING created_at
	`, input.ID, input.Name, input.Lng, input.Lat, input.RadiusM, input.UserID)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Area{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Area, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, ST_Y(location::geometry), ST_X(location::geometry), radius_m, COALESCE(user_id::text,''), created_at
		FROM areas WHERE id=$1
	`, id)
	var a Area
	if err := row.Scan(&a.ID, &a.Name, &a.Lat, &a.Lng, &a.RadiusM, &a.UserID, &a.CreatedAt); err != nil {
		return Area{}, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Area, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, ST_Y(location::geometry), ST_X(location::geometry), radius_m, COALESCE(user_id::text,''), created_at
		FROM areas WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []Area
	for rows.Next() {
		var a Area
		if err := rows.Scan(&a.ID, &a.Name, &a.Lat, &a.Lng, &a.RadiusM, &a.UserID, &a.CreatedAt); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Area) (Area, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Area{}, err
	}
	if patch.Name != "" {
		a.Name = patch.Name
	}
	if patch.Lat != 0 {
		a.Lat = patch.Lat
	}
	if patch.Lng != 0 {
		a.Lng = patch.Lng
	}
	if patch.RadiusM != 0 {
		a.RadiusM = patch.RadiusM
	}

	_, err = s.db.Exec(ctx, `
		UPDATE areas
		SET name=$2,
		    location=ST_SetSRID(ST_MakePoint($3,$4), 4326)::geography,
		    radius_m=$5
		WHERE id=$1
	`, a.ID, a.Name, a.Lng, a.Lat, a.RadiusM)
	if err != nil {
		return Area{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM areas WHERE id=$1`, id)
	return err
}

// VisitCount counts stored points falling inside the area circle.
func (s *Service) VisitCount(ctx context.Context, id string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM points p, areas a
		WHERE a.id = $1
		  AND ST_DWithin(ST_SetSRID(ST_MakePoint(p.longitude, p.latitude), 4326)::geography, a.location, a.radius_m)
	`, id).Scan(&count)
	return count, err
}
