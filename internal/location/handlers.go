package location

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/fixes", func(c *fiber.Ctx) error {
		var req Fix
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.Push(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.SendStatus(fiber.StatusAccepted)
	})

	r.Get("/current", func(c *fiber.Ctx) error {
		coord, err := svc.Current(c.Context())
		return c.JSON(fiber.Map{
			"coordinate": coord,
			"fallback":   err != nil,
		})
	})
}
