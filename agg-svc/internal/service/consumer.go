package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"restaurant-hub/agg-svc/internal/domain"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start reads until ctx is cancelled. Bad payloads and failed updates are
// logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Aggregation Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Aggregation Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var msg domain.KafkaMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling message from %s: %v", message.Topic, err)
			continue
		}

		if err := c.Handle(ctx, msg); err != nil {
			log.Printf("Error processing %s: %v", msg.Type, err)
		}
	}
}

func (c *Consumer) Handle(ctx context.Context, msg domain.KafkaMessage) error {
	switch msg.Type {
	case domain.EventNewReview:
		return c.processReview(ctx, msg)
	case domain.EventOrderPlaced:
		return c.processOrderLine(ctx, msg)
	case domain.EventOrderStatusChanged:
		log.Printf("Order %d moved to %s", msg.OrderID, msg.Status)
		return nil
	default:
		return nil
	}
}

func (c *Consumer) processReview(ctx context.Context, msg domain.KafkaMessage) error {
	log.Printf("Processing review: MenuItemID=%d, Rating=%d", msg.MenuItemID, msg.Rating)

	avgRating, err := c.Store.UpdateMenuItemRating(ctx, msg.MenuItemID)
	if err != nil {
		return fmt.Errorf("update rating for menu item %d: %w", msg.MenuItemID, err)
	}
	if err := c.Store.UpdateAllTime(ctx, msg.MenuItemID, avgRating); err != nil {
		return fmt.Errorf("update all-time leaderboard: %w", err)
	}

	log.Printf("Successfully processed review for menu item %d", msg.MenuItemID)
	return nil
}

func (c *Consumer) processOrderLine(ctx context.Context, msg domain.KafkaMessage) error {
	if msg.Quantity <= 0 {
		return nil
	}
	at := msg.Timestamp
	if at.IsZero() {
		at = time.Now()
	}
	if err := c.Store.RecordOrderLine(ctx, msg.MenuItemID, msg.Quantity, at); err != nil {
		return fmt.Errorf("record order %d line: %w", msg.OrderID, err)
	}
	return nil
}

var _ ConsumerInterface = (*Consumer)(nil)
