package handlers

import (
	"bagel-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ListMenuHandler returns the available menu items.
func ListMenuHandler(menu *services.MenuService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := menu.ListAvailable(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(items)
	}
}

// ListTeachersHandler returns all teachers ordered by name.
func ListTeachersHandler(teachers *services.TeacherService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := teachers.List(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(list)
	}
}
