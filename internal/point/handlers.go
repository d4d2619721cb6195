package point

import (
	"time"

	"github.com/davisdeatonphotography/dawarich/internal/config"

	"github.com/gofiber/fiber/v2"
)

// trackerPayload follows the OwnTracks location message: tst is a unix
// timestamp in seconds, vel km/h, batt percent.
type trackerPayload struct {
	Type      string   `json:"_type"`
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Tst       int64    `json:"tst"`
	Alt       *float64 `json:"alt"`
	Vel       *float64 `json:"vel"`
	Batt      *float64 `json:"batt"`
	Topic     string   `json:"topic"`
	TrackerID string   `json:"tid"`
}

func RegisterRoutes(r fiber.Router, svc *Service, cfg config.Config, apiKeyMiddleware, authMiddleware fiber.Handler) {
	r.Post("/", apiKeyMiddleware, func(c *fiber.Ctx) error {
		var req trackerPayload
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Tst == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "tst required")
		}

		userID, _ := c.Locals("user_id").(string)
		created, err := svc.Create(c.Context(), Point{
			Latitude:  req.Lat,
			Longitude: req.Lon,
			Timestamp: time.Unix(req.Tst, 0).UTC(),
			Altitude:  req.Alt,
			Velocity:  req.Vel,
			Battery:   req.Batt,
			Topic:     req.Topic,
			TrackerID: req.TrackerID,
			UserID:    userID,
			RawData:   c.Body(),
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		from, to, err := rangeFromQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		points, err := svc.Range(c.Context(), from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(points)
	})

	r.Get("/fog", authMiddleware, func(c *fiber.Ctx) error {
		from, to, err := rangeFromQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		points, err := svc.Range(c.Context(), from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		radius := cfg.FogOfWarMeters
		if v := c.QueryFloat("radius"); v > 0 {
			radius = v
		}
		return c.JSON(fiber.Map{
			"radius_meters": radius,
			"circles":       FogCircles(points, radius),
		})
	})
}

func rangeFromQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if v := c.Query("start"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			return from, to, err
		}
	}
	if v := c.Query("end"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}
