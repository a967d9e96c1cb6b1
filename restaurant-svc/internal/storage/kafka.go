package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

const (
	ReviewsTopic = "reviews"
	OrdersTopic  = "orders"
)

// KafkaPublisher routes review events to the reviews topic and order events
// to the orders topic.
type KafkaPublisher struct {
	Reviews *kafka.Writer
	Orders  *kafka.Writer
}

func NewKafkaPublisher(reviews, orders *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Reviews: reviews, Orders: orders}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg domain.KafkaMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	writer, key := p.Orders, msg.OrderID
	if msg.Type == domain.EventNewReview {
		writer, key = p.Reviews, msg.MenuItemID
	}
	return writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(key)),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	if err := p.Reviews.Close(); err != nil {
		return err
	}
	return p.Orders.Close()
}
