package handlers

import (
	"bagel-backend/internal/models"
	"bagel-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AssignSeatHandler claims a seat for a teacher, or releases it again when
// active=false is sent.
func AssignSeatHandler(seats *services.SeatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.AssignSeatRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}

		if req.SeatID == "" || req.TeacherID == "" {
			return c.Status(400).JSON(fiber.Map{"error": "Missing seat_id or teacher_id"})
		}

		if req.Active != nil && !*req.Active {
			if err := seats.Unassign(c.Context(), req.SeatID, req.TeacherID); err != nil {
				return c.Status(500).JSON(fiber.Map{"error": err.Error()})
			}
			return c.JSON(fiber.Map{"success": true})
		}

		assignment, err := seats.Assign(c.Context(), req)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(assignment)
	}
}

// ListSeatsHandler returns the full seat map.
func ListSeatsHandler(seats *services.SeatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := seats.ListSeats(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(list)
	}
}

// ListSeatAssignmentsHandler returns active assignments with teachers.
func ListSeatAssignmentsHandler(seats *services.SeatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := seats.ListActiveAssignments(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(list)
	}
}
