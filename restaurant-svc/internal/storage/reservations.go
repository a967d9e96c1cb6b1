package storage

import (
	"context"
	"database/sql"
	"errors"

	"restaurant-hub/restaurant-svc/internal/domain"
)

const reservationColumns = `id, user_id, name, email, phone, to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI'),
	number_of_guests, special_requests, confirmed, created_at`

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var userID sql.NullInt64
	err := row.Scan(&reservation.ID, &userID, &reservation.Name, &reservation.Email, &reservation.Phone,
		&reservation.Date, &reservation.Time, &reservation.NumberOfGuests, &reservation.SpecialRequests,
		&reservation.Confirmed, &reservation.CreatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		id := int(userID.Int64)
		reservation.UserID = &id
	}
	return &reservation, nil
}

func (r *PostgresRepository) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO reservations (user_id, name, email, phone, date, time, number_of_guests, special_requests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, confirmed, created_at`,
		reservation.UserID, reservation.Name, reservation.Email, reservation.Phone, reservation.Date,
		reservation.Time, reservation.NumberOfGuests, reservation.SpecialRequests).
		Scan(&reservation.ID, &reservation.Confirmed, &reservation.CreatedAt)
}

// ConfirmReservation sets confirmed once. The bool result reports whether the
// reservation had already been confirmed before this call.
func (r *PostgresRepository) ConfirmReservation(ctx context.Context, id int) (*domain.Reservation, bool, error) {
	reservation, err := scanReservation(r.DB.QueryRowContext(ctx,
		"UPDATE reservations SET confirmed = TRUE WHERE id = $1 AND confirmed = FALSE RETURNING "+reservationColumns, id))
	if err == nil {
		return reservation, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	reservation, err = scanReservation(r.DB.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = $1", id))
	if err != nil {
		return nil, false, notFound(err)
	}
	return reservation, true, nil
}

func (r *PostgresRepository) ListUnconfirmed(ctx context.Context) ([]domain.Reservation, error) {
	return r.listReservations(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE NOT confirmed ORDER BY date, time")
}

func (r *PostgresRepository) ListReservationsForUser(ctx context.Context, userID int) ([]domain.Reservation, error) {
	return r.listReservations(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE user_id = $1 ORDER BY date DESC, time DESC",
		userID)
}

func (r *PostgresRepository) listReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *reservation)
	}
	return reservations, rows.Err()
}
