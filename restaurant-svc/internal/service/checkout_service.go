package service

import (
	"context"
	"log"
	"strings"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"
)

type CheckoutPreview struct {
	DraftView
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

type CheckoutServiceInterface interface {
	Preview(user *domain.User, sess *domain.Session) (*CheckoutPreview, error)
	Checkout(ctx context.Context, user *domain.User, sess *domain.Session, form domain.ContactForm) (int, error)
}

type CheckoutService struct {
	orders    OrderRepository
	sessions  SessionStore
	qrEncoder QRGenerator
	publisher EventPublisher
}

func NewCheckoutService(orders OrderRepository, sessions SessionStore, qr QRGenerator, publisher EventPublisher) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		sessions:  sessions,
		qrEncoder: qr,
		publisher: publisher,
	}
}

func (s *CheckoutService) Preview(user *domain.User, sess *domain.Session) (*CheckoutPreview, error) {
	if err := domain.RequireRole(user, domain.RoleCustomer); err != nil {
		return nil, err
	}
	if sess.Draft.IsEmpty() {
		return nil, domain.ErrEmptyDraft
	}
	return &CheckoutPreview{
		DraftView:     *newDraftView(&sess.Draft),
		CustomerName:  user.DisplayName(),
		CustomerEmail: user.Email,
	}, nil
}

// Checkout turns the session draft into a Pending order. Unit prices are read
// from the menu inside the order transaction, so a stale session snapshot
// never reaches order_items. The draft is cleared only after the commit.
func (s *CheckoutService) Checkout(ctx context.Context, user *domain.User, sess *domain.Session, form domain.ContactForm) (int, error) {
	if err := domain.RequireRole(user, domain.RoleCustomer); err != nil {
		return 0, err
	}
	if sess.Draft.IsEmpty() {
		return 0, domain.ErrEmptyDraft
	}

	order, err := s.buildOrder(user, sess, form)
	if err != nil {
		return 0, err
	}

	if err := s.orders.PlaceOrder(ctx, order); err != nil {
		return 0, err
	}

	sess.Draft.Clear()
	if err := s.sessions.Save(ctx, sess); err != nil {
		log.Printf("[restaurant-svc] WARNING: order %d placed but session %s not cleared: %v", order.ID, sess.ID, err)
	}

	s.attachQRCode(ctx, order.ID)
	s.publishPlaced(ctx, order)

	log.Printf("[restaurant-svc] order %d placed by user %d: %d items, total %s",
		order.ID, user.ID, len(order.Items), order.TotalAmount.StringFixed(2))
	return order.ID, nil
}

func (s *CheckoutService) buildOrder(user *domain.User, sess *domain.Session, form domain.ContactForm) (*domain.Order, error) {
	name := strings.TrimSpace(form.CustomerName)
	if name == "" {
		name = strings.TrimSpace(user.DisplayName())
	}
	email := strings.TrimSpace(form.CustomerEmail)
	if email == "" {
		email = user.Email
	}
	phone := strings.TrimSpace(form.CustomerPhone)

	if name == "" {
		return nil, invalid("customer_name", requiredFieldsMessage)
	}
	if len(name) > 100 {
		return nil, invalid("customer_name", "name must be at most 100 characters")
	}
	if err := validateEmail("customer_email", email); err != nil {
		return nil, err
	}
	if len(phone) > 20 {
		return nil, invalid("customer_phone", "phone must be at most 20 characters")
	}

	userID := user.ID
	order := &domain.Order{
		UserID:        &userID,
		Status:        domain.StatusPending,
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
	}
	for line := range sess.Draft.Lines() {
		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID:   line.ItemID,
			MenuItemName: line.Name,
			Quantity:     line.Quantity,
		})
	}
	return order, nil
}

func (s *CheckoutService) attachQRCode(ctx context.Context, orderID int) {
	if s.qrEncoder == nil {
		return
	}
	qr, err := s.qrEncoder.Generate(orderID)
	if err != nil {
		log.Printf("[restaurant-svc] WARNING: failed to generate QR code for order %d: %v", orderID, err)
		return
	}
	if err := s.orders.SaveQRCode(ctx, orderID, qr); err != nil {
		log.Printf("[restaurant-svc] WARNING: failed to store QR code for order %d: %v", orderID, err)
	}
}

func (s *CheckoutService) publishPlaced(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	for _, item := range order.Items {
		err := s.publisher.Publish(ctx, domain.KafkaMessage{
			Type:       domain.EventOrderPlaced,
			OrderID:    order.ID,
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UserID:     derefID(order.UserID),
			Timestamp:  time.Now(),
		})
		if err != nil {
			log.Printf("[restaurant-svc] WARNING: failed to publish order %d: %v", order.ID, err)
			return
		}
	}
}

func derefID(id *int) int {
	if id == nil {
		return 0
	}
	return *id
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)
