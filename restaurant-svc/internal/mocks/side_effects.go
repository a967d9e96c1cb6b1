package mocks

import (
	"context"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ReviewCache struct {
	mock.Mock
}

func NewReviewCache(t testingT) *ReviewCache {
	m := &ReviewCache{}
	register(&m.Mock, t)
	return m
}

func (_m *ReviewCache) ReviewMarkerKey(menuItemID, userID int) string {
	return _m.Called(menuItemID, userID).String(0)
}

func (_m *ReviewCache) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func (_m *ReviewCache) SetMarker(ctx context.Context, key string) error {
	return _m.Called(ctx, key).Error(0)
}

type PopularityBoard struct {
	mock.Mock
}

func NewPopularityBoard(t testingT) *PopularityBoard {
	m := &PopularityBoard{}
	register(&m.Mock, t)
	return m
}

func (_m *PopularityBoard) TopToday(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	ret := _m.Called(ctx, limit)
	return get[[]domain.PopularItem](ret, 0), ret.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	register(&m.Mock, t)
	return m
}

func (_m *EventPublisher) Publish(ctx context.Context, msg domain.KafkaMessage) error {
	return _m.Called(ctx, msg).Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	register(&m.Mock, t)
	return m
}

func (_m *QRGenerator) Generate(orderID int) ([]byte, error) {
	ret := _m.Called(orderID)
	return get[[]byte](ret, 0), ret.Error(1)
}
