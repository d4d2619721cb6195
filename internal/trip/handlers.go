package trip

import (
	"errors"
	"time"

	"github.com/davisdeatonphotography/dawarich/internal/config"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, cfg config.Config, authMiddleware fiber.Handler) {
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

		maxDistance := cfg.MetersBetweenRoutes
		if v := c.QueryFloat("meters"); v != 0 {
			maxDistance = v
		}
		maxMinutes := cfg.MinutesBetweenRoutes
		if v := c.QueryFloat("minutes"); v != 0 {
			maxMinutes = v
		}

		trips, err := svc.List(c.Context(), from, to, maxDistance, maxMinutes)
		if err != nil {
			if errors.Is(err, ErrUnorderedPoints) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(trips)
	})
}
