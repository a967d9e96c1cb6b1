package storage

import (
	"context"
	"database/sql"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"
)

const reviewQuery = `
	SELECT r.id, r.menu_item_id, m.name, r.user_id, COALESCE(u.username, ''), r.rating, r.comment, r.created_at
	FROM reviews r
	JOIN menu_items m ON m.id = r.menu_item_id
	LEFT JOIN users u ON u.id = r.user_id`

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	var userID sql.NullInt64
	err := row.Scan(&review.ID, &review.MenuItemID, &review.MenuItemName, &userID, &review.Username,
		&review.Rating, &review.Comment, &review.CreatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		id := int(userID.Int64)
		review.UserID = &id
	}
	return &review, nil
}

func (r *PostgresRepository) CreateReview(ctx context.Context, review *domain.Review) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO reviews (menu_item_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		review.MenuItemID, review.UserID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateReview
	}
	return err
}

func (r *PostgresRepository) ReviewExists(ctx context.Context, menuItemID, userID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM reviews WHERE menu_item_id = $1 AND user_id = $2)",
		menuItemID, userID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) ListRecentReviews(ctx context.Context, limit int) ([]domain.Review, error) {
	return r.listReviews(ctx, reviewQuery+" ORDER BY r.created_at DESC LIMIT $1", limit)
}

func (r *PostgresRepository) ListReviewsForUser(ctx context.Context, userID int) ([]domain.Review, error) {
	return r.listReviews(ctx, reviewQuery+" WHERE r.user_id = $1 ORDER BY r.created_at DESC", userID)
}

func (r *PostgresRepository) ListReviewsForItem(ctx context.Context, menuItemID int) ([]domain.Review, error) {
	return r.listReviews(ctx, reviewQuery+" WHERE r.menu_item_id = $1 ORDER BY r.created_at DESC", menuItemID)
}

func (r *PostgresRepository) listReviews(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	return reviews, rows.Err()
}

// ReviewStats returns the mean rating and the time of the first review. Both
// are zero when there are no reviews.
func (r *PostgresRepository) ReviewStats(ctx context.Context) (float64, time.Time, error) {
	var avg float64
	var first sql.NullTime
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(rating), 0), MIN(created_at) FROM reviews").Scan(&avg, &first)
	if err != nil {
		return 0, time.Time{}, err
	}
	return avg, first.Time, nil
}
