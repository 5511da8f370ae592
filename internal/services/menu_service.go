package services

import (
	"context"

	"bagel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MenuService struct {
	pool *pgxpool.Pool
}

func NewMenuService(pool *pgxpool.Pool) *MenuService {
	return &MenuService{pool: pool}
}

// ListAvailable returns orderable menu items, grouped by category
// (descending, bagels before drinks) then name.
func (s *MenuService) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, category, description, price, available, toppings_config, created_at
		 FROM menu_items WHERE available = true
		 ORDER BY category DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.Description, &m.Price, &m.Available, &m.ToppingsConfig, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
