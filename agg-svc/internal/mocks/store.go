package mocks

import (
	"context"
	"encoding/json"
	"time"

	"restaurant-hub/agg-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type StoreInterface struct {
	mock.Mock
}

func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *StoreInterface) UpdateMenuItemRating(ctx context.Context, menuItemID int) (float64, error) {
	ret := _m.Called(ctx, menuItemID)
	return ret.Get(0).(float64), ret.Error(1)
}

func (_m *StoreInterface) UpdateAllTime(ctx context.Context, menuItemID int, avgRating float64) error {
	return _m.Called(ctx, menuItemID, avgRating).Error(0)
}

func (_m *StoreInterface) RecordOrderLine(ctx context.Context, menuItemID, quantity int, at time.Time) error {
	return _m.Called(ctx, menuItemID, quantity, at).Error(0)
}

// MessageReader replays queued messages, then blocks until the context ends.
type MessageReader struct {
	Messages []kafka.Message
}

func (r *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.Messages) > 0 {
		msg := r.Messages[0]
		r.Messages = r.Messages[1:]
		return msg, nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

// Encode is a test helper for building reader payloads.
func Encode(msg domain.KafkaMessage) []byte {
	payload, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return payload
}
