package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"
)

type ReviewRequest struct {
	MenuItemID json.Number `json:"menu_item"`
	Rating     json.Number `json:"rating"`
	Comment    string      `json:"comment"`
}

type ReviewServiceInterface interface {
	Submit(ctx context.Context, user *domain.User, req ReviewRequest) (*domain.Review, error)
	ListForItem(ctx context.Context, menuItemID int) ([]domain.Review, error)
	ListForUser(ctx context.Context, userID int) ([]domain.Review, error)
	Recent(ctx context.Context, limit int) ([]domain.Review, error)
	AverageRating(ctx context.Context) (float64, error)
}

type ReviewService struct {
	repository ReviewRepository
	menu       MenuRepository
	cache      ReviewCache
	publisher  EventPublisher
}

func NewReviewService(repository ReviewRepository, menu MenuRepository, cache ReviewCache, publisher EventPublisher) *ReviewService {
	return &ReviewService{
		repository: repository,
		menu:       menu,
		cache:      cache,
		publisher:  publisher,
	}
}

// Submit stores a 1-5 rating for a menu item. A signed-in user can review a
// given item once; anonymous reviews are not deduplicated.
func (s *ReviewService) Submit(ctx context.Context, user *domain.User, req ReviewRequest) (*domain.Review, error) {
	itemRaw := strings.TrimSpace(string(req.MenuItemID))
	ratingRaw := strings.TrimSpace(string(req.Rating))
	if itemRaw == "" || ratingRaw == "" {
		return nil, invalid("rating", "Please select a menu item and rating.")
	}
	menuItemID, err := strconv.Atoi(itemRaw)
	if err != nil {
		return nil, invalid("menu_item", "Invalid menu item.")
	}
	rating, err := strconv.Atoi(ratingRaw)
	if err != nil {
		return nil, invalid("rating", "Invalid rating value.")
	}
	if rating < 1 || rating > 5 {
		return nil, invalid("rating", "Rating must be between 1 and 5.")
	}

	item, err := s.menu.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		MenuItemID:   item.ID,
		MenuItemName: item.Name,
		Rating:       rating,
		Comment:      strings.TrimSpace(req.Comment),
	}

	var cacheKey string
	if user != nil {
		userID := user.ID
		review.UserID = &userID
		review.Username = user.Username

		if s.cache != nil {
			cacheKey = s.cache.ReviewMarkerKey(item.ID, user.ID)
			if exists, _ := s.cache.Exists(ctx, cacheKey); exists {
				return nil, domain.ErrDuplicateReview
			}
		}
		exists, err := s.repository.ReviewExists(ctx, item.ID, user.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			s.markReviewed(ctx, cacheKey)
			return nil, domain.ErrDuplicateReview
		}
	}

	if err := s.repository.CreateReview(ctx, review); err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			s.markReviewed(ctx, cacheKey)
		}
		return nil, err
	}
	s.markReviewed(ctx, cacheKey)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.KafkaMessage{
			Type:       domain.EventNewReview,
			MenuItemID: review.MenuItemID,
			UserID:     derefID(review.UserID),
			Rating:     review.Rating,
			Timestamp:  time.Now(),
		}); err != nil {
			log.Printf("[restaurant-svc] Warning: failed to publish review %d: %v", review.ID, err)
		}
	}

	return review, nil
}

func (s *ReviewService) markReviewed(ctx context.Context, cacheKey string) {
	if cacheKey == "" {
		return
	}
	if err := s.cache.SetMarker(ctx, cacheKey); err != nil {
		log.Printf("[restaurant-svc] Warning: failed to cache review marker: %v", err)
	}
}

func (s *ReviewService) ListForItem(ctx context.Context, menuItemID int) ([]domain.Review, error) {
	return s.repository.ListReviewsForItem(ctx, menuItemID)
}

func (s *ReviewService) ListForUser(ctx context.Context, userID int) ([]domain.Review, error) {
	return s.repository.ListReviewsForUser(ctx, userID)
}

func (s *ReviewService) Recent(ctx context.Context, limit int) ([]domain.Review, error) {
	return s.repository.ListRecentReviews(ctx, limit)
}

// AverageRating is the mean of all ratings rounded to one decimal, 0 without reviews.
func (s *ReviewService) AverageRating(ctx context.Context) (float64, error) {
	avg, _, err := s.repository.ReviewStats(ctx)
	if err != nil {
		return 0, err
	}
	return roundRating(avg), nil
}

func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

var _ ReviewServiceInterface = (*ReviewService)(nil)
