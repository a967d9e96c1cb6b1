package storage

import (
	"context"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/lib/pq"
)

const userQuery = `
	SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.password_hash, u.is_staff, u.created_at,
		COALESCE(array_agg(g.group_name) FILTER (WHERE g.group_name IS NOT NULL), '{}')
	FROM users u
	LEFT JOIN user_groups g ON g.user_id = u.id`

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var groups []string
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.IsStaff, &user.CreatedAt, pq.Array(&groups))
	if err != nil {
		return nil, notFound(err)
	}
	user.Groups = groups
	return &user, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, email, first_name, last_name, password_hash, is_staff)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.IsStaff).
		Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrUsernameTaken
	}
	return err
}

func (r *PostgresRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userQuery+" WHERE u.id = $1 GROUP BY u.id", id))
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userQuery+" WHERE u.username = $1 GROUP BY u.id", username))
}

func (r *PostgresRepository) AddUserToGroup(ctx context.Context, userID int, group string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_groups (user_id, group_name) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		userID, group)
	return err
}
