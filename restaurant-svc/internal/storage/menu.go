package storage

import (
	"context"
	"fmt"

	"restaurant-hub/restaurant-svc/internal/domain"
)

const menuItemColumns = `
	m.id, m.category_id, c.name, m.name, m.description, m.price, COALESCE(m.image_url, ''),
	m.is_available, m.avg_rating, m.review_count, m.created_at, m.updated_at`

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(&item.ID, &item.CategoryID, &item.CategoryName, &item.Name, &item.Description, &item.Price,
		&item.ImageURL, &item.IsAvailable, &item.AvgRating, &item.ReviewCount, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, description FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	var category domain.Category
	err := r.DB.QueryRowContext(ctx, "SELECT id, name, description FROM categories WHERE id = $1", id).
		Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id",
		category.Name, category.Description).Scan(&category.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

// DeleteCategory removes a category and every item in it, with the items'
// order lines and reviews.
func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		"DELETE FROM order_items WHERE menu_item_id IN (SELECT id FROM menu_items WHERE category_id = $1)",
		"DELETE FROM reviews WHERE menu_item_id IN (SELECT id FROM menu_items WHERE category_id = $1)",
		"DELETE FROM menu_items WHERE category_id = $1",
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (r *PostgresRepository) ListAvailableItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT`+menuItemColumns+`
		FROM menu_items m
		JOIN categories c ON c.id = m.category_id
		WHERE m.is_available
		ORDER BY c.name, m.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) CountAvailableItems(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM menu_items WHERE is_available").Scan(&count)
	return count, err
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx, `
		SELECT`+menuItemColumns+`
		FROM menu_items m
		JOIN categories c ON c.id = m.category_id
		WHERE m.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (category_id, name, description, price, image_url, is_available)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING id, created_at, updated_at`,
		item.CategoryID, item.Name, item.Description, item.Price, item.ImageURL, item.IsAvailable).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET category_id=$1, name=$2, description=$3, price=$4, is_available=$5, updated_at=NOW()
		WHERE id=$6
		RETURNING updated_at`,
		item.CategoryID, item.Name, item.Description, item.Price, item.IsAvailable, item.ID).
		Scan(&item.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return notFound(err)
}

// DeleteMenuItem removes the item's order lines and reviews before the item
// itself, in one transaction.
func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE menu_item_id = $1", id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM reviews WHERE menu_item_id = $1", id); err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (r *PostgresRepository) UpdateMenuItemImage(ctx context.Context, id int, imageURL string) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE menu_items SET image_url = $1, updated_at = NOW() WHERE id = $2", imageURL, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
