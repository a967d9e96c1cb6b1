package mocks

import (
	"context"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type SessionStore struct {
	mock.Mock
}

func NewSessionStore(t testingT) *SessionStore {
	m := &SessionStore{}
	register(&m.Mock, t)
	return m
}

func (_m *SessionStore) New() *domain.Session {
	return get[*domain.Session](_m.Called(), 0)
}

func (_m *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	ret := _m.Called(ctx, id)
	return get[*domain.Session](ret, 0), ret.Error(1)
}

func (_m *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	return _m.Called(ctx, sess).Error(0)
}

func (_m *SessionStore) Delete(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}
