package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewStore(db, rdb), sqlMock, mr
}

func TestUpdateMenuItemRating(t *testing.T) {
	store, sqlMock, mr := newTestStore(t)

	sqlMock.ExpectQuery(`UPDATE menu_items`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"avg_rating", "review_count"}).AddRow(4.5, 10))

	avg, err := store.UpdateMenuItemRating(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)
	assert.NoError(t, sqlMock.ExpectationsWereMet())

	assert.Equal(t, "4.5", mr.HGet("menu_item:1", "avg_rating"))
	assert.Equal(t, "10", mr.HGet("menu_item:1", "review_count"))
	assert.Equal(t, 24*time.Hour, mr.TTL("menu_item:1"))
}

func TestUpdateMenuItemRating_UpdateError(t *testing.T) {
	store, sqlMock, mr := newTestStore(t)

	sqlMock.ExpectQuery(`UPDATE menu_items`).
		WithArgs(1).
		WillReturnError(errors.New("update failed"))

	_, err := store.UpdateMenuItemRating(context.Background(), 1)
	assert.Error(t, err)
	assert.False(t, mr.Exists("menu_item:1"))
}

func TestUpdateAllTime(t *testing.T) {
	store, _, mr := newTestStore(t)

	require.NoError(t, store.UpdateAllTime(context.Background(), 3, 4.25))
	require.NoError(t, store.UpdateAllTime(context.Background(), 3, 3.5))

	score, err := mr.ZScore(AllTimeKey, "3")
	require.NoError(t, err)
	assert.Equal(t, 3.5, score)
}

func TestRecordOrderLine(t *testing.T) {
	store, _, mr := newTestStore(t)
	day := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

	require.NoError(t, store.RecordOrderLine(context.Background(), 2, 3, day))
	require.NoError(t, store.RecordOrderLine(context.Background(), 2, 1, day))

	key := DailyKey(day)
	assert.Equal(t, "analytics:daily:2026-03-01", key)
	score, err := mr.ZScore(key, "2")
	require.NoError(t, err)
	assert.Equal(t, float64(4), score)
	assert.Equal(t, 7*24*time.Hour, mr.TTL(key))
}
