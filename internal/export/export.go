package export

import (
	"context"
	"time"

	"github.com/davisdeatonphotography/dawarich/internal/db"
	"github.com/davisdeatonphotography/dawarich/internal/point"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PointSource interface {
	Range(ctx context.Context, from, to time.Time) ([]point.Point, error)
}

type Service struct {
	db     db.Querier
	points PointSource
}

func NewService(db db.Querier, points PointSource) *Service {
	return &Service{db: db, points: points}
}

// Create snapshots the points of a range and records the export.
func (s *Service) Create(ctx context.Context, userID, name string, from, to time.Time) (string, []point.Point, error) {
	points, err := s.points.Range(ctx, from, to)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	_, err = s.db.Exec(ctx, `
		INSERT INTO exports (id, user_id, name, points_count)
		VALUES ($1,$2,$3,$4)
	`, id, userID, name, len(points))
	if err != nil {
		return "", nil, err
	}
	return id, points, nil
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		var from, to time.Time
		var err error
		if v := c.Query("start"); v != "" {
			if from, err = time.Parse(time.RFC3339, v); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}
		if v := c.Query("end"); v != "" {
			if to, err = time.Parse(time.RFC3339, v); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		name := c.Query("name")
		if name == "" {
			name = "points-" + time.Now().UTC().Format("20060102-150405")
		}

		userID, _ := c.Locals("user_id").(string)
		id, points, err := svc.Create(c.Context(), userID, name, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`.json"`)
		return c.JSON(fiber.Map{
			"id":     id,
			"name":   name,
			"points": points,
		})
	})
}
