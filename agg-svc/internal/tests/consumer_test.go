package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-hub/agg-svc/internal/domain"
	"restaurant-hub/agg-svc/internal/mocks"
	"restaurant-hub/agg-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestConsumer_Handle(t *testing.T) {
	placedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		inputMessage   domain.KafkaMessage
		setupMockStore func(*mocks.StoreInterface)
		wantErr        bool
	}{
		{
			name:         "new review",
			inputMessage: domain.KafkaMessage{Type: domain.EventNewReview, MenuItemID: 1, Rating: 5},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("UpdateMenuItemRating", mock.Anything, 1).Return(4.5, nil).Once()
				mockStore.On("UpdateAllTime", mock.Anything, 1, 4.5).Return(nil).Once()
			},
		},
		{
			name:         "rating update fails",
			inputMessage: domain.KafkaMessage{Type: domain.EventNewReview, MenuItemID: 1, Rating: 5},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("UpdateMenuItemRating", mock.Anything, 1).Return(0.0, errors.New("db connection failed")).Once()
			},
			wantErr: true,
		},
		{
			name:         "leaderboard update fails",
			inputMessage: domain.KafkaMessage{Type: domain.EventNewReview, MenuItemID: 1, Rating: 5},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("UpdateMenuItemRating", mock.Anything, 1).Return(4.0, nil).Once()
				mockStore.On("UpdateAllTime", mock.Anything, 1, 4.0).Return(errors.New("redis error")).Once()
			},
			wantErr: true,
		},
		{
			name:         "order line",
			inputMessage: domain.KafkaMessage{Type: domain.EventOrderPlaced, OrderID: 42, MenuItemID: 3, Quantity: 2, Timestamp: placedAt},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrderLine", mock.Anything, 3, 2, placedAt).Return(nil).Once()
			},
		},
		{
			name:           "order line without quantity",
			inputMessage:   domain.KafkaMessage{Type: domain.EventOrderPlaced, OrderID: 42, MenuItemID: 3},
			setupMockStore: func(*mocks.StoreInterface) {},
		},
		{
			name:           "status change is only logged",
			inputMessage:   domain.KafkaMessage{Type: domain.EventOrderStatusChanged, OrderID: 42, Status: "Completed"},
			setupMockStore: func(*mocks.StoreInterface) {},
		},
		{
			name:           "unknown type ignored",
			inputMessage:   domain.KafkaMessage{Type: "unknown_type", MenuItemID: 1},
			setupMockStore: func(*mocks.StoreInterface) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := service.NewConsumer(nil, mockStore)
			err := consumer.Handle(context.Background(), testCase.inputMessage)

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_StartSkipsBadPayloads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("UpdateMenuItemRating", mock.Anything, 7).Return(3.5, nil).Once()
	mockStore.On("UpdateAllTime", mock.Anything, 7, 3.5).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil).Once()

	reader := &mocks.MessageReader{Messages: []kafka.Message{
		{Topic: "reviews", Value: []byte("not json")},
		{Topic: "reviews", Value: mocks.Encode(domain.KafkaMessage{Type: domain.EventNewReview, MenuItemID: 7, Rating: 3})},
	}}

	done := make(chan struct{})
	go func() {
		service.NewConsumer(reader, mockStore).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}
