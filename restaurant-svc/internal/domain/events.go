package domain

import "time"

const (
	EventNewReview          = "new_review"
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
)

type KafkaMessage struct {
	Type       string    `json:"type"`
	MenuItemID int       `json:"menu_item_id,omitempty"`
	OrderID    int       `json:"order_id,omitempty"`
	UserID     int       `json:"user_id,omitempty"`
	Rating     int       `json:"rating,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	Status     string    `json:"status,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
