package mocks

import (
	"context"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MenuRepository struct {
	mock.Mock
}

func NewMenuRepository(t testingT) *MenuRepository {
	m := &MenuRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *MenuRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ret := _m.Called(ctx)
	return get[[]domain.Category](ret, 0), ret.Error(1)
}

func (_m *MenuRepository) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	ret := _m.Called(ctx, id)
	return get[*domain.Category](ret, 0), ret.Error(1)
}

func (_m *MenuRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	return _m.Called(ctx, category).Error(0)
}

func (_m *MenuRepository) DeleteCategory(ctx context.Context, id int) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *MenuRepository) ListAvailableItems(ctx context.Context) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx)
	return get[[]domain.MenuItem](ret, 0), ret.Error(1)
}

func (_m *MenuRepository) CountAvailableItems(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)
	return ret.Int(0), ret.Error(1)
}

func (_m *MenuRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	return get[*domain.MenuItem](ret, 0), ret.Error(1)
}

func (_m *MenuRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return _m.Called(ctx, item).Error(0)
}

func (_m *MenuRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return _m.Called(ctx, item).Error(0)
}

func (_m *MenuRepository) DeleteMenuItem(ctx context.Context, id int) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *MenuRepository) UpdateMenuItemImage(ctx context.Context, id int, imageURL string) error {
	return _m.Called(ctx, id, imageURL).Error(0)
}
