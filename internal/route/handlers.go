package route

import (
	"context"
	"errors"

	"github.com/Lawmlor123/run-app/internal/shared/geo"
	"github.com/gofiber/fiber/v2"
)

// Locator supplies the device position when a generate request carries no
// explicit origin; satisfied by *location.Service.
type Locator interface {
	Current(ctx context.Context) (geo.Coordinate, error)
}

func RegisterRoutes(r fiber.Router, svc *Service, locator Locator) {
	r.Post("/generate", func(c *fiber.Ctx) error {
		var req struct {
			Origin      *geo.Coordinate `json:"origin"`
			TargetMiles float64         `json:"target_miles"`
			Count       int             `json:"count"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var origin geo.Coordinate
		if req.Origin != nil {
			origin = *req.Origin
		} else {
			// a fallback coordinate is still usable; the locator logs it
			origin, _ = locator.Current(c.Context())
		}

		candidates, err := svc.Generate(c.Context(), origin, req.TargetMiles, req.Count)
		if err != nil {
			switch {
			case errors.Is(err, ErrRouteTooShort):
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			case errors.Is(err, ErrGenerationStale):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			default:
				return fiber.NewError(fiber.StatusBadGateway, err.Error())
			}
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"candidates": candidates})
	})

	r.Post("/:id/select", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "candidate id must be an integer")
		}
		candidates, err := svc.Select(id)
		if err != nil {
			if errors.Is(err, ErrUnknownCandidate) || errors.Is(err, ErrNoCandidates) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"candidates": candidates})
	})

	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"candidates": svc.Candidates()})
	})
}
