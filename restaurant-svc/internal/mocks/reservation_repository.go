package mocks

import (
	"context"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ReservationRepository struct {
	mock.Mock
}

func NewReservationRepository(t testingT) *ReservationRepository {
	m := &ReservationRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *ReservationRepository) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	return _m.Called(ctx, reservation).Error(0)
}

func (_m *ReservationRepository) ConfirmReservation(ctx context.Context, id int) (*domain.Reservation, bool, error) {
	ret := _m.Called(ctx, id)
	return get[*domain.Reservation](ret, 0), ret.Bool(1), ret.Error(2)
}

func (_m *ReservationRepository) ListUnconfirmed(ctx context.Context) ([]domain.Reservation, error) {
	ret := _m.Called(ctx)
	return get[[]domain.Reservation](ret, 0), ret.Error(1)
}

func (_m *ReservationRepository) ListReservationsForUser(ctx context.Context, userID int) ([]domain.Reservation, error) {
	ret := _m.Called(ctx, userID)
	return get[[]domain.Reservation](ret, 0), ret.Error(1)
}
