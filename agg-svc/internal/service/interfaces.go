package service

import (
	"context"
	"time"

	"restaurant-hub/agg-svc/internal/domain"
	"restaurant-hub/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	UpdateMenuItemRating(ctx context.Context, menuItemID int) (float64, error)
	UpdateAllTime(ctx context.Context, menuItemID int, avgRating float64) error
	RecordOrderLine(ctx context.Context, menuItemID, quantity int, at time.Time) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Handle(ctx context.Context, msg domain.KafkaMessage) error
}

var (
	_ StoreInterface = (*storage.Store)(nil)
	_ MessageReader  = (*kafka.Reader)(nil)
)
