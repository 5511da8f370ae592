package handlers

import (
	"bagel-backend/internal/models"
	"bagel-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CreateOrderHandler places a new order for a teacher.
func CreateOrderHandler(orders *services.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateOrderRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}

		if req.TeacherID == "" || len(req.Items) == 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid order data"})
		}

		orderID, err := orders.Create(c.Context(), req)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"success": true, "orderId": orderID})
	}
}

// ListOrdersHandler returns today's orders for the kitchen queue, oldest
// first. Live updates arrive over the realtime feed.
func ListOrdersHandler(orders *services.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := orders.ListToday(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(list)
	}
}

// UpdateOrderStatusHandler moves an order through the kitchen workflow.
func UpdateOrderStatusHandler(orders *services.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateOrderStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}

		if req.OrderID == "" || req.Status == "" {
			return c.Status(400).JSON(fiber.Map{"error": "Missing order_id or status"})
		}

		order, err := orders.UpdateStatus(c.Context(), req.OrderID, req.Status)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(order)
	}
}

// DeleteOrderHandler removes an order and its items.
func DeleteOrderHandler(orders *services.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := orders.Delete(c.Context(), id); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
