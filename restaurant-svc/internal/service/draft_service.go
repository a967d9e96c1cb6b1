package service

import (
	"context"
	"fmt"
	"slices"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type DraftView struct {
	Items      []domain.DraftLine `json:"order_items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Count      int                `json:"cart_count"`
}

type DraftServiceInterface interface {
	Add(ctx context.Context, user *domain.User, sess *domain.Session, itemID int) (*domain.MenuItem, error)
	SetQuantity(ctx context.Context, user *domain.User, sess *domain.Session, itemID, quantity int) error
	Remove(ctx context.Context, user *domain.User, sess *domain.Session, itemID int) error
	View(user *domain.User, sess *domain.Session) (*DraftView, error)
	Count(sess *domain.Session) int
}

var errQuantityTooLarge = invalid("quantity", fmt.Sprintf("Ensure this value is less than or equal to %d.", domain.MaxLineQuantity))

type DraftService struct {
	sessions SessionStore
	menu     MenuRepository
}

func NewDraftService(sessions SessionStore, menu MenuRepository) *DraftService {
	return &DraftService{sessions: sessions, menu: menu}
}

func (s *DraftService) Add(ctx context.Context, user *domain.User, sess *domain.Session, itemID int) (*domain.MenuItem, error) {
	if err := domain.RequireRole(user, domain.RoleCustomer); err != nil {
		return nil, err
	}
	if entry, ok := sess.Draft.Entry(itemID); ok && entry.Quantity >= domain.MaxLineQuantity {
		return nil, errQuantityTooLarge
	}
	item, err := s.menu.GetMenuItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	sess.Draft.Add(*item)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return item, nil
}

func (s *DraftService) SetQuantity(ctx context.Context, user *domain.User, sess *domain.Session, itemID, quantity int) error {
	if err := domain.RequireRole(user, domain.RoleCustomer); err != nil {
		return err
	}
	if quantity > domain.MaxLineQuantity {
		return errQuantityTooLarge
	}
	sess.Draft.SetQuantity(itemID, quantity)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *DraftService) Remove(ctx context.Context, user *domain.User, sess *domain.Session, itemID int) error {
	if err := domain.RequireRole(user, domain.RoleCustomer); err != nil {
		return err
	}
	sess.Draft.Remove(itemID)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *DraftService) View(user *domain.User, sess *domain.Session) (*DraftView, error) {
	if err := domain.RequireRole(user, domain.RoleCustomer); err != nil {
		return nil, err
	}
	return newDraftView(&sess.Draft), nil
}

func (s *DraftService) Count(sess *domain.Session) int {
	if sess == nil {
		return 0
	}
	return sess.Draft.Count()
}

func newDraftView(d *domain.Draft) *DraftView {
	items := slices.Collect(d.Lines())
	if items == nil {
		items = []domain.DraftLine{}
	}
	return &DraftView{
		Items:      items,
		TotalPrice: d.Total(),
		Count:      d.Count(),
	}
}

var _ DraftServiceInterface = (*DraftService)(nil)
