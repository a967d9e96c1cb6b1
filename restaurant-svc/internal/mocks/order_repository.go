package mocks

import (
	"context"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *OrderRepository) PlaceOrder(ctx context.Context, order *domain.Order) error {
	return _m.Called(ctx, order).Error(0)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	ret := _m.Called(ctx, id)
	return get[*domain.Order](ret, 0), ret.Error(1)
}

func (_m *OrderRepository) ListOrdersByStatus(ctx context.Context, statuses ...domain.OrderStatus) ([]domain.Order, error) {
	args := []interface{}{ctx}
	for _, status := range statuses {
		args = append(args, status)
	}
	ret := _m.Called(args...)
	return get[[]domain.Order](ret, 0), ret.Error(1)
}

func (_m *OrderRepository) ListOrdersForUser(ctx context.Context, userID int) ([]domain.Order, error) {
	ret := _m.Called(ctx, userID)
	return get[[]domain.Order](ret, 0), ret.Error(1)
}

func (_m *OrderRepository) UpdateStatus(ctx context.Context, id int, from, to domain.OrderStatus) error {
	return _m.Called(ctx, id, from, to).Error(0)
}

func (_m *OrderRepository) SaveQRCode(ctx context.Context, id int, qr []byte) error {
	return _m.Called(ctx, id, qr).Error(0)
}

func (_m *OrderRepository) GetQRCode(ctx context.Context, id int) ([]byte, error) {
	ret := _m.Called(ctx, id)
	return get[[]byte](ret, 0), ret.Error(1)
}

func (_m *OrderRepository) PopularToday(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	ret := _m.Called(ctx, limit)
	return get[[]domain.PopularItem](ret, 0), ret.Error(1)
}
