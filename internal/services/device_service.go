package services

import (
	"context"

	"bagel-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeviceService struct {
	pool *pgxpool.Pool
}

func NewDeviceService(pool *pgxpool.Pool) *DeviceService {
	return &DeviceService{pool: pool}
}

// Touch upserts a device row and stamps last_used_at. When the client has
// no id yet a fresh one is generated and returned to it.
func (s *DeviceService) Touch(ctx context.Context, id string, nickname *string) (*models.Device, error) {
	if id == "" {
		id = uuid.New().String()
	}

	var d models.Device
	err := s.pool.QueryRow(ctx,
		`INSERT INTO devices (id, nickname, last_used_at) VALUES ($1, $2, now())
		 ON CONFLICT (id) DO UPDATE SET nickname = COALESCE($2, devices.nickname), last_used_at = now()
		 RETURNING id, nickname, last_used_at`,
		id, nickname).Scan(&d.ID, &d.Nickname, &d.LastUsedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
