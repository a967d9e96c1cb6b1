package service

import (
	"context"
	"time"

	"restaurant-hub/config"
	"restaurant-hub/restaurant-svc/internal/domain"
)

const (
	recentReviewsOnHome = 5
	defaultYearsServing = 10
)

type HomePage struct {
	Categories     []domain.Category `json:"categories"`
	MenuItems      []domain.MenuItem `json:"menu_items"`
	RecentReviews  []domain.Review   `json:"recent_reviews"`
	AvailableItems int               `json:"available_items"`
	AverageRating  float64           `json:"average_rating"`
	YearsServing   int               `json:"years_serving"`
	CartCount      int               `json:"cart_count"`
}

type HomeServiceInterface interface {
	Home(ctx context.Context, sess *domain.Session) (*HomePage, error)
	Contact() config.Contact
}

type HomeService struct {
	menu    MenuRepository
	reviews ReviewRepository
	contact config.Contact
	now     func() time.Time
}

func NewHomeService(menu MenuRepository, reviews ReviewRepository, contact config.Contact) *HomeService {
	return &HomeService{menu: menu, reviews: reviews, contact: contact, now: time.Now}
}

func (s *HomeService) Home(ctx context.Context, sess *domain.Session) (*HomePage, error) {
	categories, err := s.menu.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.menu.ListAvailableItems(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.reviews.ListRecentReviews(ctx, recentReviewsOnHome)
	if err != nil {
		return nil, err
	}
	available, err := s.menu.CountAvailableItems(ctx)
	if err != nil {
		return nil, err
	}
	avg, first, err := s.reviews.ReviewStats(ctx)
	if err != nil {
		return nil, err
	}

	page := &HomePage{
		Categories:     categories,
		MenuItems:      items,
		RecentReviews:  recent,
		AvailableItems: available,
		AverageRating:  roundRating(avg),
		YearsServing:   yearsServing(first, s.now()),
	}
	if sess != nil {
		page.CartCount = sess.Draft.Count()
	}
	return page, nil
}

func (s *HomeService) Contact() config.Contact {
	return s.contact
}

// yearsServing counts whole years since the first review, at least one.
func yearsServing(first, now time.Time) int {
	if first.IsZero() {
		return defaultYearsServing
	}
	days := int(now.Sub(first).Hours() / 24)
	return max(days/365, 1)
}

var _ HomeServiceInterface = (*HomeService)(nil)
