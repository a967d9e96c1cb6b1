package mocks

import (
	"context"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return _m.Called(ctx, user).Error(0)
}

func (_m *UserRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	ret := _m.Called(ctx, id)
	return get[*domain.User](ret, 0), ret.Error(1)
}

func (_m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	ret := _m.Called(ctx, username)
	return get[*domain.User](ret, 0), ret.Error(1)
}

func (_m *UserRepository) AddUserToGroup(ctx context.Context, userID int, group string) error {
	return _m.Called(ctx, userID, group).Error(0)
}
