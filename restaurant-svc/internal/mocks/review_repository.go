package mocks

import (
	"context"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ReviewRepository struct {
	mock.Mock
}

func NewReviewRepository(t testingT) *ReviewRepository {
	m := &ReviewRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *ReviewRepository) CreateReview(ctx context.Context, review *domain.Review) error {
	return _m.Called(ctx, review).Error(0)
}

func (_m *ReviewRepository) ReviewExists(ctx context.Context, menuItemID, userID int) (bool, error) {
	ret := _m.Called(ctx, menuItemID, userID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *ReviewRepository) ListRecentReviews(ctx context.Context, limit int) ([]domain.Review, error) {
	ret := _m.Called(ctx, limit)
	return get[[]domain.Review](ret, 0), ret.Error(1)
}

func (_m *ReviewRepository) ListReviewsForUser(ctx context.Context, userID int) ([]domain.Review, error) {
	ret := _m.Called(ctx, userID)
	return get[[]domain.Review](ret, 0), ret.Error(1)
}

func (_m *ReviewRepository) ListReviewsForItem(ctx context.Context, menuItemID int) ([]domain.Review, error) {
	ret := _m.Called(ctx, menuItemID)
	return get[[]domain.Review](ret, 0), ret.Error(1)
}

func (_m *ReviewRepository) ReviewStats(ctx context.Context) (float64, time.Time, error) {
	ret := _m.Called(ctx)
	return get[float64](ret, 0), get[time.Time](ret, 1), ret.Error(2)
}
