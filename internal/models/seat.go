package models

import "time"

// Seat is one physical seat at a table; devices are linked to seats.
type Seat struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	TableID  *int   `json:"table_id"`
}

// SeatAssignment links a teacher (and optionally a device) to a seat. At
// most one assignment per seat is active at a time.
type SeatAssignment struct {
	ID        string     `json:"id"`
	SeatID    *string    `json:"seat_id"`
	TeacherID *string    `json:"teacher_id"`
	DeviceID  *string    `json:"device_id"`
	Active    bool       `json:"active"`
	CreatedAt *time.Time `json:"created_at"`
}

// SeatAssignmentDetail carries the joined teacher row, shaped like the
// nested select the seat map consumes.
type SeatAssignmentDetail struct {
	SeatAssignment
	Teacher *Teacher `json:"teachers"`
}

type AssignSeatRequest struct {
	SeatID    string  `json:"seat_id"`
	TeacherID string  `json:"teacher_id"`
	DeviceID  *string `json:"device_id"`
	Active    *bool   `json:"active"`
}
