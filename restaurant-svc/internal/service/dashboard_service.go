package service

import (
	"context"
	"log"

	"restaurant-hub/restaurant-svc/internal/domain"
)

const popularItemsLimit = 10

type Dashboard struct {
	ActiveOrders        []domain.Order       `json:"orders"`
	PendingReservations []domain.Reservation `json:"reservations"`
	PopularToday        []domain.PopularItem `json:"popular_today"`
}

type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, staff *domain.User) (*Dashboard, error)
}

type DashboardService struct {
	orders       OrderRepository
	reservations ReservationRepository
	menu         MenuRepository
	board        PopularityBoard
}

func NewDashboardService(orders OrderRepository, reservations ReservationRepository, menu MenuRepository, board PopularityBoard) *DashboardService {
	return &DashboardService{
		orders:       orders,
		reservations: reservations,
		menu:         menu,
		board:        board,
	}
}

func (s *DashboardService) Dashboard(ctx context.Context, staff *domain.User) (*Dashboard, error) {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListOrdersByStatus(ctx, domain.StatusPending, domain.StatusProcessing)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListUnconfirmed(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		ActiveOrders:        orders,
		PendingReservations: reservations,
		PopularToday:        s.popularToday(ctx),
	}, nil
}

// popularToday reads the leaderboard kept by agg-svc and falls back to
// today's order lines when it is empty or unreachable.
func (s *DashboardService) popularToday(ctx context.Context) []domain.PopularItem {
	var items []domain.PopularItem
	if s.board != nil {
		top, err := s.board.TopToday(ctx, popularItemsLimit)
		if err != nil {
			log.Printf("[restaurant-svc] WARNING: leaderboard unavailable: %v", err)
		}
		for _, item := range top {
			menuItem, err := s.menu.GetMenuItem(ctx, item.MenuItemID)
			if err != nil {
				continue
			}
			item.Name = menuItem.Name
			items = append(items, item)
		}
	}
	if len(items) > 0 {
		return items
	}

	items, err := s.orders.PopularToday(ctx, popularItemsLimit)
	if err != nil {
		log.Printf("[restaurant-svc] WARNING: failed to compute popular items: %v", err)
		return []domain.PopularItem{}
	}
	if items == nil {
		items = []domain.PopularItem{}
	}
	return items
}

var _ DashboardServiceInterface = (*DashboardService)(nil)
