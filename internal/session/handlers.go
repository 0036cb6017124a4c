package session

import (
	"errors"

	"github.com/Lawmlor123/run-app/internal/shared/geo"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/start", func(c *fiber.Ctx) error {
		var req struct {
			Origin *geo.Coordinate `json:"origin"`
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}
		stats, err := svc.StartRun(c.Context(), req.Origin)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(stats)
	})

	r.Post("/stop", func(c *fiber.Ctx) error {
		stats, err := svc.StopRun()
		if err != nil {
			if errors.Is(err, ErrNoSession) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	})

	r.Get("/stats", func(c *fiber.Ctx) error {
		stats, err := svc.Stats()
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(stats)
	})

	r.Get("/track", func(c *fiber.Ctx) error {
		track, err := svc.Track()
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(fiber.Map{"track": track})
	})
}
