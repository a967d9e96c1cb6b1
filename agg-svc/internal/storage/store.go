package storage

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	menuItemKeyPrefix = "menu_item:"
	dailyKeyPrefix    = "analytics:daily:"
	AllTimeKey        = "analytics:alltime"

	menuItemTTL    = 24 * time.Hour
	leaderboardTTL = 7 * 24 * time.Hour
)

type Store struct {
	db  *sql.DB
	rdb *redis.Client
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{db: db, rdb: rdb}
}

func MenuItemKey(menuItemID int) string {
	return menuItemKeyPrefix + strconv.Itoa(menuItemID)
}

func DailyKey(day time.Time) string {
	return dailyKeyPrefix + day.Format(time.DateOnly)
}

// UpdateMenuItemRating recomputes the stored aggregates from the reviews
// table and mirrors them into the menu_item:<id> hash.
func (s *Store) UpdateMenuItemRating(ctx context.Context, menuItemID int) (float64, error) {
	var avgRating float64
	var reviewCount int
	err := s.db.QueryRowContext(ctx, `
		UPDATE menu_items
		SET avg_rating = COALESCE((
			SELECT ROUND(AVG(rating::numeric), 2)
			FROM reviews
			WHERE menu_item_id = $1
		), 0),
		review_count = (
			SELECT COUNT(*)
			FROM reviews
			WHERE menu_item_id = $1
		)
		WHERE id = $1
		RETURNING avg_rating, review_count
	`, menuItemID).Scan(&avgRating, &reviewCount)
	if err != nil {
		return 0, err
	}

	key := MenuItemKey(menuItemID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"avg_rating":   avgRating,
		"review_count": reviewCount,
		"last_updated": time.Now().Unix(),
	})
	pipe.Expire(ctx, key, menuItemTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return avgRating, nil
}

// UpdateAllTime stores the item's average rating in the all-time leaderboard.
func (s *Store) UpdateAllTime(ctx context.Context, menuItemID int, avgRating float64) error {
	return s.rdb.ZAdd(ctx, AllTimeKey, redis.Z{
		Score:  avgRating,
		Member: strconv.Itoa(menuItemID),
	}).Err()
}

// RecordOrderLine adds quantity to the item's score on the day's leaderboard.
func (s *Store) RecordOrderLine(ctx context.Context, menuItemID, quantity int, at time.Time) error {
	key := DailyKey(at)
	pipe := s.rdb.TxPipeline()
	pipe.ZIncrBy(ctx, key, float64(quantity), strconv.Itoa(menuItemID))
	pipe.Expire(ctx, key, leaderboardTTL)
	_, err := pipe.Exec(ctx)
	return err
}
