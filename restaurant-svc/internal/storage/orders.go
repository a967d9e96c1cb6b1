package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/lib/pq"
)

const orderColumns = `id, user_id, status, total_amount, customer_name, customer_email, customer_phone, order_date`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var userID sql.NullInt64
	err := row.Scan(&order.ID, &userID, &order.Status, &order.TotalAmount, &order.CustomerName,
		&order.CustomerEmail, &order.CustomerPhone, &order.OrderDate)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		id := int(userID.Int64)
		order.UserID = &id
	}
	order.Items = []domain.OrderItem{}
	return &order, nil
}

// PlaceOrder writes the order and its lines in one transaction. Each line's
// unit price is re-read from menu_items under a share lock, and the total is
// computed from those prices. A missing menu item aborts the whole order.
func (r *PostgresRepository) PlaceOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range order.Items {
		item := &order.Items[i]
		err := tx.QueryRowContext(ctx,
			"SELECT name, price FROM menu_items WHERE id = $1 FOR SHARE", item.MenuItemID).
			Scan(&item.MenuItemName, &item.Price)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("menu item %d: %w", item.MenuItemID, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("read price for menu item %d: %w", item.MenuItemID, err)
		}
	}
	order.Recalculate()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, status, total_amount, customer_name, customer_email, customer_phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, order_date`,
		order.UserID, order.Status, order.TotalAmount, order.CustomerName, order.CustomerEmail, order.CustomerPhone).
		Scan(&order.ID, &order.OrderDate); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			order.ID, item.MenuItemID, item.Quantity, item.Price).Scan(&item.ID); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err)
	}
	orders := []domain.Order{*order}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListOrdersByStatus returns matching orders newest first, with their lines.
func (r *PostgresRepository) ListOrdersByStatus(ctx context.Context, statuses ...domain.OrderStatus) ([]domain.Order, error) {
	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}
	return r.listOrders(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE status = ANY($1) ORDER BY order_date DESC",
		pq.Array(names))
}

func (r *PostgresRepository) ListOrdersForUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return r.listOrders(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY order_date DESC",
		userID)
}

func (r *PostgresRepository) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int]int, len(orders))
	for i, order := range orders {
		ids[i] = int64(order.ID)
		index[order.ID] = i
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, m.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.MenuItemName, &item.Quantity, &item.Price); err != nil {
			return err
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}

// UpdateStatus moves an order from one status to another only if it is still
// in the expected one.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int, from, to domain.OrderStatus) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2 AND status = $3", to, id, from)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows > 0 {
		return nil
	}

	var exists bool
	if err := r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: order %d is no longer %s", domain.ErrInvalidTransition, id, from)
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, id int, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET qr_code = $1 WHERE id = $2", qr, id)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, id int) ([]byte, error) {
	var qrCode []byte
	if err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", id).Scan(&qrCode); err != nil {
		return nil, notFound(err)
	}
	return qrCode, nil
}

// PopularToday ranks menu items by quantity ordered today.
func (r *PostgresRepository) PopularToday(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.id, m.name, SUM(oi.quantity) AS score
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE o.order_date::date = CURRENT_DATE
		GROUP BY m.id, m.name
		ORDER BY score DESC, m.name
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.PopularItem{}
	for rows.Next() {
		var item domain.PopularItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Score); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
