package stats

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

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
		summary, err := svc.Summarize(c.Context(), from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(summary)
	})
}
