package models

import (
	"encoding/json"
	"time"
)

// PreOrder is an order placed ahead of service, fulfilled later by the
// kitchen.
type PreOrder struct {
	ID        string    `json:"id"`
	TeacherID *string   `json:"teacher_id"`
	DeviceID  *string   `json:"device_id"`
	Fulfilled bool      `json:"fulfilled"`
	CreatedAt time.Time `json:"created_at"`
}

type PreOrderItem struct {
	ID         string          `json:"id"`
	PreOrderID string          `json:"pre_order_id"`
	MenuItemID *string         `json:"menu_item_id"`
	Toppings   json.RawMessage `json:"toppings"`
	Notes      *string         `json:"notes"`
	CreatedAt  *time.Time      `json:"created_at"`
}

// PreOrderDetail is a pre-order with its items attached.
type PreOrderDetail struct {
	PreOrder
	Items []PreOrderItem `json:"pre_order_items"`
}

type CreatePreOrderRequest struct {
	TeacherID    string           `json:"teacher_id"`
	DeviceID     *string          `json:"device_id"`
	Items        []OrderItemInput `json:"items"`
	DietaryNotes *string          `json:"dietary_notes"`
}
