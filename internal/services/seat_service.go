package services

import (
	"context"

	"bagel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SeatService struct {
	pool *pgxpool.Pool
}

func NewSeatService(pool *pgxpool.Pool) *SeatService {
	return &SeatService{pool: pool}
}

// Assign deactivates whatever assignment is active on the seat and inserts
// a fresh active one, returning it.
func (s *SeatService) Assign(ctx context.Context, req models.AssignSeatRequest) (*models.SeatAssignment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE seat_assignments SET active = false WHERE seat_id = $1 AND active = true`,
		req.SeatID)
	if err != nil {
		return nil, err
	}

	var a models.SeatAssignment
	err = tx.QueryRow(ctx,
		`INSERT INTO seat_assignments (seat_id, teacher_id, device_id, active) VALUES ($1, $2, $3, true)
		 RETURNING id, seat_id, teacher_id, device_id, active, created_at`,
		req.SeatID, req.TeacherID, req.DeviceID).
		Scan(&a.ID, &a.SeatID, &a.TeacherID, &a.DeviceID, &a.Active, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &a, nil
}

// Unassign deactivates the teacher's active assignment on the seat.
func (s *SeatService) Unassign(ctx context.Context, seatID, teacherID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE seat_assignments SET active = false WHERE seat_id = $1 AND teacher_id = $2 AND active = true`,
		seatID, teacherID)
	return err
}

// ListSeats returns every seat.
func (s *SeatService) ListSeats(ctx context.Context) ([]models.Seat, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, position, table_id FROM seats ORDER BY table_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := []models.Seat{}
	for rows.Next() {
		var seat models.Seat
		if err := rows.Scan(&seat.ID, &seat.Position, &seat.TableID); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

// ListActiveAssignments returns active assignments with the teacher row
// joined in, shaped for the seat map.
func (s *SeatService) ListActiveAssignments(ctx context.Context) ([]models.SeatAssignmentDetail, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.seat_id, a.teacher_id, a.device_id, a.active, a.created_at,
		        t.id, t.name, t.dietary_notes, t.created_at
		 FROM seat_assignments a
		 LEFT JOIN teachers t ON t.id = a.teacher_id
		 WHERE a.active = true`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []models.SeatAssignmentDetail{}
	for rows.Next() {
		var a models.SeatAssignmentDetail
		var teacher models.Teacher
		var teacherID, teacherName *string
		err := rows.Scan(&a.ID, &a.SeatID, &a.TeacherID, &a.DeviceID, &a.Active, &a.CreatedAt,
			&teacherID, &teacherName, &teacher.DietaryNotes, &teacher.CreatedAt)
		if err != nil {
			return nil, err
		}
		if teacherID != nil {
			teacher.ID = *teacherID
			teacher.Name = *teacherName
			a.Teacher = &teacher
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
