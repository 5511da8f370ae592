package services

import (
	"context"
	"fmt"

	"bagel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PreOrderService struct {
	pool *pgxpool.Pool
}

func NewPreOrderService(pool *pgxpool.Pool) *PreOrderService {
	return &PreOrderService{pool: pool}
}

// Create inserts a pre-order and its items in one transaction, updating
// the teacher's dietary notes first when provided.
func (s *PreOrderService) Create(ctx context.Context, req models.CreatePreOrderRequest) (string, error) {
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

	var preOrderID string
	err = tx.QueryRow(ctx,
		`INSERT INTO pre_orders (teacher_id, device_id, fulfilled) VALUES ($1, $2, false) RETURNING id`,
		req.TeacherID, req.DeviceID).Scan(&preOrderID)
	if err != nil {
		return "", err
	}

	for _, item := range req.Items {
		toppings := item.Toppings
		if toppings == nil {
			toppings = []byte("[]")
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO pre_order_items (pre_order_id, menu_item_id, toppings, notes) VALUES ($1, $2, $3, $4)`,
			preOrderID, item.MenuItemID, toppings, item.Notes)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return preOrderID, nil
}

// List returns pre-orders newest first with their items, optionally
// filtered by teacher and fulfilled state.
func (s *PreOrderService) List(ctx context.Context, teacherID *string, fulfilled *bool) ([]models.PreOrderDetail, error) {
	query := `SELECT id, teacher_id, device_id, fulfilled, created_at FROM pre_orders`
	args := []any{}
	where := ""
	if teacherID != nil {
		args = append(args, *teacherID)
		where = fmt.Sprintf(" WHERE teacher_id = $%d", len(args))
	}
	if fulfilled != nil {
		args = append(args, *fulfilled)
		if where == "" {
			where = fmt.Sprintf(" WHERE fulfilled = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND fulfilled = $%d", len(args))
		}
	}
	query += where + ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	preOrders := []models.PreOrderDetail{}
	index := map[string]int{}
	ids := []string{}
	for rows.Next() {
		var p models.PreOrder
		if err := rows.Scan(&p.ID, &p.TeacherID, &p.DeviceID, &p.Fulfilled, &p.CreatedAt); err != nil {
			return nil, err
		}
		index[p.ID] = len(preOrders)
		ids = append(ids, p.ID)
		preOrders = append(preOrders, models.PreOrderDetail{PreOrder: p, Items: []models.PreOrderItem{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(preOrders) == 0 {
		return preOrders, nil
	}

	itemRows, err := s.pool.Query(ctx,
		`SELECT id, pre_order_id, menu_item_id, toppings, notes, created_at
		 FROM pre_order_items WHERE pre_order_id = ANY($1::uuid[]) ORDER BY created_at ASC`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.PreOrderItem
		if err := itemRows.Scan(&item.ID, &item.PreOrderID, &item.MenuItemID, &item.Toppings, &item.Notes, &item.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[item.PreOrderID]; ok {
			preOrders[i].Items = append(preOrders[i].Items, item)
		}
	}
	return preOrders, itemRows.Err()
}

// Fulfill marks a pre-order as fulfilled.
func (s *PreOrderService) Fulfill(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `UPDATE pre_orders SET fulfilled = true WHERE id = $1`, id)
	return err
}

// Delete removes a pre-order and its items. Items go first (foreign key).
func (s *PreOrderService) Delete(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM pre_order_items WHERE pre_order_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM pre_orders WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
