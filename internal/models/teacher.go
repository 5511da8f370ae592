package models

import "time"

// Teacher is a member of staff who places orders.
type Teacher struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	DietaryNotes *string    `json:"dietary_notes"`
	CreatedAt    *time.Time `json:"created_at"`
}
