package handlers

import (
	"bagel-backend/internal/models"
	"bagel-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ListPreOrdersHandler returns pre-orders newest first, optionally
// filtered by teacher_id and fulfilled query params.
func ListPreOrdersHandler(preOrders *services.PreOrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var teacherID *string
		if v := c.Query("teacher_id"); v != "" {
			teacherID = &v
		}
		var fulfilled *bool
		if v := c.Query("fulfilled"); v != "" {
			b := v == "true"
			fulfilled = &b
		}

		list, err := preOrders.List(c.Context(), teacherID, fulfilled)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(list)
	}
}

// CreatePreOrderHandler places an order for a later service.
func CreatePreOrderHandler(preOrders *services.PreOrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreatePreOrderRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}

		if req.TeacherID == "" || len(req.Items) == 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid order data"})
		}

		preOrderID, err := preOrders.Create(c.Context(), req)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"success": true, "orderId": preOrderID})
	}
}

// FulfillPreOrderHandler marks a pre-order as handed over.
func FulfillPreOrderHandler(preOrders *services.PreOrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := preOrders.Fulfill(c.Context(), c.Params("id")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DeletePreOrderHandler removes a pre-order and its items.
func DeletePreOrderHandler(preOrders *services.PreOrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := preOrders.Delete(c.Context(), c.Params("id")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
