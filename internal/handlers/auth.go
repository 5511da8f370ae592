package handlers

import (
	"errors"

	"bagel-backend/internal/models"
	"bagel-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// VerifyPinHandler checks the kitchen-display PIN against system_config.
// A wrong PIN is not an error, just success=false.
func VerifyPinHandler(config *services.ConfigService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.VerifyPinRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}

		if req.Pin == "" {
			return c.Status(400).JSON(fiber.Map{"error": "pin required"})
		}

		ok, err := config.VerifyPin(c.Context(), req.Pin)
		if err != nil {
			if errors.Is(err, services.ErrConfigNotFound) {
				return c.Status(500).JSON(fiber.Map{"error": "no PIN configured"})
			}
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"success": ok})
	}
}

// TouchDeviceHandler records a seat device's presence. Devices without an
// id yet get one assigned.
func TouchDeviceHandler(devices *services.DeviceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.TouchDeviceRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}

		device, err := devices.Touch(c.Context(), req.ID, req.Nickname)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(device)
	}
}
