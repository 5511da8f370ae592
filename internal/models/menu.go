package models

import (
	"encoding/json"
	"time"
)

// MenuItem is one orderable item on the breakfast menu.
type MenuItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Description    *string         `json:"description"`
	Price          *float64        `json:"price"`
	Available      bool            `json:"available"`
	ToppingsConfig json.RawMessage `json:"toppings_config"`
	CreatedAt      *time.Time      `json:"created_at"`
}
