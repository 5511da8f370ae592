package services

import (
	"context"
	"time"

	"bagel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderService struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewOrderService(pool *pgxpool.Pool) *OrderService {
	return &OrderService{pool: pool, now: time.Now}
}

// Create inserts an order and its items in one transaction. When dietary
// notes are provided the teacher's record is updated first; an empty
// string clears the notes.
func (s *OrderService) Create(ctx context.Context, req models.CreateOrderRequest) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	if req.DietaryNotes != nil {
		_, err = tx.Exec(ctx,
			`UPDATE teachers SET dietary_notes = NULLIF($1, '') WHERE id = $2`,
			*req.DietaryNotes, req.TeacherID)
		if err != nil {
			return "", err
		}
	}

	var orderID string
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (teacher_id, seat_id, device_id, status) VALUES ($1, $2, $3, $4) RETURNING id`,
		req.TeacherID, req.SeatID, req.DeviceID, models.OrderStatusPending).Scan(&orderID)
	if err != nil {
		return "", err
	}

	for _, item := range req.Items {
		toppings := item.Toppings
		if toppings == nil {
			toppings = []byte("[]")
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, menu_item_id, toppings, notes) VALUES ($1, $2, $3, $4)`,
			orderID, item.MenuItemID, toppings, item.Notes)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return orderID, nil
}

// Delete removes an order and its items. Items go first (foreign key).
func (s *OrderService) Delete(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateStatus sets an order's status and returns the updated row.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	var o models.Order
	err := s.pool.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
		 RETURNING id, teacher_id, seat_id, device_id, status, created_at, updated_at`,
		orderID, status).Scan(&o.ID, &o.TeacherID, &o.SeatID, &o.DeviceID, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListToday returns today's orders oldest first, each with its items and
// their menu items, shaped for the kitchen queue's initial load.
func (s *OrderService) ListToday(ctx context.Context) ([]models.OrderDetail, error) {
	midnight := startOfDay(s.now())

	rows, err := s.pool.Query(ctx,
		`SELECT id, teacher_id, seat_id, device_id, status, created_at, updated_at
		 FROM orders WHERE created_at >= $1 ORDER BY created_at ASC`, midnight)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.OrderDetail{}
	index := map[string]int{}
	ids := []string{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.TeacherID, &o.SeatID, &o.DeviceID, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, models.OrderDetail{Order: o, Items: []models.OrderItemDetail{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := s.pool.Query(ctx,
		`SELECT i.id, i.order_id, i.menu_item_id, i.toppings, i.notes, i.created_at,
		        m.id, m.name, m.category, m.description, m.price, m.available, m.toppings_config, m.created_at
		 FROM order_items i
		 LEFT JOIN menu_items m ON m.id = i.menu_item_id
		 WHERE i.order_id = ANY($1::uuid[])
		 ORDER BY i.created_at ASC`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.OrderItemDetail
		var menuID, menuName, menuCategory *string
		var menu models.MenuItem
		var menuAvailable *bool
		err := itemRows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.Toppings, &item.Notes, &item.CreatedAt,
			&menuID, &menuName, &menuCategory, &menu.Description, &menu.Price, &menuAvailable, &menu.ToppingsConfig, &menu.CreatedAt)
		if err != nil {
			return nil, err
		}
		if menuID != nil {
			menu.ID = *menuID
			menu.Name = *menuName
			menu.Category = *menuCategory
			if menuAvailable != nil {
				menu.Available = *menuAvailable
			}
			item.MenuItem = &menu
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}

// startOfDay returns midnight of t's calendar day in t's own zone.
// Truncating the absolute time would give UTC midnight instead, which
// shifts the window into the wrong day for any non-UTC server.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
