package models

import (
	"encoding/json"
	"time"
)

// Order statuses as used by the kitchen display.
const (
	OrderStatusPending = "pending"
	OrderStatusReady   = "ready"
	OrderStatusServed  = "served"
)

type Order struct {
	ID        string    `json:"id"`
	TeacherID *string   `json:"teacher_id"`
	SeatID    *string   `json:"seat_id"`
	DeviceID  *string   `json:"device_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	MenuItemID *string         `json:"menu_item_id"`
	Toppings   json.RawMessage `json:"toppings"`
	Notes      *string         `json:"notes"`
	CreatedAt  *time.Time      `json:"created_at"`
}

// OrderItemDetail is an order item with its menu item joined in, shaped
// like the nested select the kitchen display consumes.
type OrderItemDetail struct {
	OrderItem
	MenuItem *MenuItem `json:"menu_items"`
}

// OrderDetail is an order with its items, the kitchen queue row.
type OrderDetail struct {
	Order
	Items []OrderItemDetail `json:"order_items"`
}

// OrderItemInput is one requested item on an incoming order.
type OrderItemInput struct {
	MenuItemID string          `json:"menu_item_id"`
	Toppings   json.RawMessage `json:"toppings"`
	Notes      *string         `json:"notes"`
}

type CreateOrderRequest struct {
	TeacherID    string           `json:"teacher_id"`
	SeatID       *string          `json:"seat_id"`
	DeviceID     *string          `json:"device_id"`
	Items        []OrderItemInput `json:"items"`
	DietaryNotes *string          `json:"dietary_notes"`
}

type UpdateOrderStatusRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
