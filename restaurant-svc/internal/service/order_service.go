package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"
)

type OrderServiceInterface interface {
	Process(ctx context.Context, staff *domain.User, orderID int) (*domain.Order, error)
	Complete(ctx context.Context, staff *domain.User, orderID int) (*domain.Order, error)
	Cancel(ctx context.Context, staff *domain.User, orderID int) (*domain.Order, error)
	SetStatus(ctx context.Context, staff *domain.User, orderID int, raw string) (*domain.Order, error)
	Get(ctx context.Context, user *domain.User, orderID int) (*domain.Order, error)
	ListActive(ctx context.Context, staff *domain.User) ([]domain.Order, error)
	QRCode(ctx context.Context, user *domain.User, orderID int) ([]byte, error)
}

type OrderService struct {
	repo      OrderRepository
	qrEncoder QRGenerator
	publisher EventPublisher
}

func NewOrderService(repo OrderRepository, qr QRGenerator, publisher EventPublisher) *OrderService {
	return &OrderService{repo: repo, qrEncoder: qr, publisher: publisher}
}

func (s *OrderService) Process(ctx context.Context, staff *domain.User, orderID int) (*domain.Order, error) {
	return s.apply(ctx, staff, orderID, domain.ActionProcess)
}

func (s *OrderService) Complete(ctx context.Context, staff *domain.User, orderID int) (*domain.Order, error) {
	return s.apply(ctx, staff, orderID, domain.ActionComplete)
}

func (s *OrderService) Cancel(ctx context.Context, staff *domain.User, orderID int) (*domain.Order, error) {
	return s.apply(ctx, staff, orderID, domain.ActionCancel)
}

// SetStatus handles the raw status form on the dashboard. It goes through the
// same transition table as the one-click actions; re-submitting the current
// status changes nothing.
func (s *OrderService) SetStatus(ctx context.Context, staff *domain.User, orderID int, raw string) (*domain.Order, error) {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return nil, err
	}
	to, err := domain.ParseOrderStatus(raw)
	if err != nil {
		return nil, err
	}
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == to {
		return order, nil
	}
	if !domain.CanTransition(order.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, to)
	}
	return s.transition(ctx, staff, order, to)
}

func (s *OrderService) apply(ctx context.Context, staff *domain.User, orderID int, action domain.OrderAction) (*domain.Order, error) {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return nil, err
	}
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	to, err := action.Target(order.Status)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, staff, order, to)
}

func (s *OrderService) transition(ctx context.Context, staff *domain.User, order *domain.Order, to domain.OrderStatus) (*domain.Order, error) {
	from := order.Status
	if err := s.repo.UpdateStatus(ctx, order.ID, from, to); err != nil {
		return nil, err
	}
	order.Status = to
	log.Printf("[restaurant-svc] order %d: %s -> %s by %s", order.ID, from, to, staff.Username)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.KafkaMessage{
			Type:      domain.EventOrderStatusChanged,
			OrderID:   order.ID,
			UserID:    derefID(order.UserID),
			Status:    string(to),
			Timestamp: time.Now(),
		}); err != nil {
			log.Printf("[restaurant-svc] WARNING: failed to publish status change for order %d: %v", order.ID, err)
		}
	}
	return order, nil
}

// Get returns an order to its owner or to staff. Other users get ErrNotFound.
func (s *OrderService) Get(ctx context.Context, user *domain.User, orderID int) (*domain.Order, error) {
	if err := domain.RequireRole(user, domain.RoleCustomer); err != nil {
		return nil, err
	}
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canSeeOrder(user, order) {
		return nil, domain.ErrNotFound
	}
	order.QRCode = QRLink(order.ID)
	return order, nil
}

func (s *OrderService) ListActive(ctx context.Context, staff *domain.User) ([]domain.Order, error) {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return nil, err
	}
	return s.repo.ListOrdersByStatus(ctx, domain.StatusPending, domain.StatusProcessing)
}

func (s *OrderService) QRCode(ctx context.Context, user *domain.User, orderID int) ([]byte, error) {
	if _, err := s.Get(ctx, user, orderID); err != nil {
		return nil, err
	}
	qr, err := s.repo.GetQRCode(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			if err := s.repo.SaveQRCode(ctx, orderID, regenerated); err != nil {
				log.Printf("[restaurant-svc] WARNING: failed to cache regenerated QR code: %v", err)
			}
			return regenerated, nil
		}
	}
	return qr, nil
}

func canSeeOrder(user *domain.User, order *domain.Order) bool {
	if domain.HasRole(user, domain.RoleStaff) {
		return true
	}
	return order.UserID != nil && *order.UserID == user.ID
}

var _ OrderServiceInterface = (*OrderService)(nil)
