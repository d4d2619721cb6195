package importer

import (
	"errors"

	"github.com/davisdeatonphotography/dawarich/internal/timeline"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, middleware fiber.Handler) {
	r.Post("/", middleware, func(c *fiber.Ctx) error {
		body := c.Body()
		if len(body) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "empty body")
		}

		name := c.Query("name")
		if name == "" {
			name = "timeline export"
		}

		userID, _ := c.Locals("user_id").(string)
		imp, err := svc.Import(c.Context(), name, userID, body)
		if err != nil {
			if errors.Is(err, timeline.ErrMalformedInput) || errors.Is(err, timeline.ErrBadTimestamp) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(imp)
	})

	r.Get("/:id", middleware, func(c *fiber.Ctx) error {
		imp, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fiber.NewError(fiber.StatusNotFound, "import not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(imp)
	})
}
