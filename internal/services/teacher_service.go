package services

import (
	"context"

	"bagel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TeacherService struct {
	pool *pgxpool.Pool
}

func NewTeacherService(pool *pgxpool.Pool) *TeacherService {
	return &TeacherService{pool: pool}
}

// List returns all teachers ordered by name.
func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, dietary_notes, created_at FROM teachers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := []models.Teacher{}
	for rows.Next() {
		var t models.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.DietaryNotes, &t.CreatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}
