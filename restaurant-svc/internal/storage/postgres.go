package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			category_id INT NOT NULL REFERENCES categories(id),
			name VARCHAR(200) NOT NULL UNIQUE,
			description TEXT NOT NULL,
			price NUMERIC(6,2) NOT NULL CHECK (price > 0),
			image_url TEXT,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			avg_rating NUMERIC(3,2) NOT NULL DEFAULT 0,
			review_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(150) NOT NULL UNIQUE,
			email VARCHAR(254) NOT NULL DEFAULT '',
			first_name VARCHAR(150) NOT NULL DEFAULT '',
			last_name VARCHAR(150) NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			is_staff BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS user_groups (
			user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			group_name VARCHAR(150) NOT NULL,
			PRIMARY KEY (user_id, group_name)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			user_id INT REFERENCES users(id) ON DELETE SET NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'Pending',
			total_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			customer_name VARCHAR(100) NOT NULL,
			customer_email VARCHAR(254) NOT NULL,
			customer_phone VARCHAR(20) NOT NULL DEFAULT '',
			qr_code BYTEA,
			order_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id INT NOT NULL REFERENCES menu_items(id),
			quantity INT NOT NULL CHECK (quantity > 0),
			price NUMERIC(6,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id SERIAL PRIMARY KEY,
			user_id INT REFERENCES users(id) ON DELETE SET NULL,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(254) NOT NULL,
			phone VARCHAR(20) NOT NULL DEFAULT '',
			date DATE NOT NULL,
			time TIME NOT NULL,
			number_of_guests INT NOT NULL CHECK (number_of_guests > 0),
			special_requests TEXT NOT NULL DEFAULT '',
			confirmed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id SERIAL PRIMARY KEY,
			menu_item_id INT NOT NULL REFERENCES menu_items(id),
			user_id INT REFERENCES users(id) ON DELETE SET NULL,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (menu_item_id, user_id)
		)`,
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
