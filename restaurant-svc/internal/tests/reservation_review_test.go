package tests

import (
	"context"
	"testing"

	"restaurant-hub/restaurant-svc/internal/domain"
	"restaurant-hub/restaurant-svc/internal/mocks"
	"restaurant-hub/restaurant-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validReservation() service.ReservationRequest {
	return service.ReservationRequest{
		Name:           "Alice",
		Email:          "alice@example.com",
		Date:           "2026-11-02",
		Time:           "19:30",
		NumberOfGuests: "4",
	}
}

func TestReservationService_Create(t *testing.T) {
	tests := []struct {
		name        string
		user        *domain.User
		mutate      func(req *service.ReservationRequest)
		wantMessage string
	}{
		{name: "anonymous visitor", mutate: func(*service.ReservationRequest) {}},
		{name: "signed in customer", user: customer, mutate: func(*service.ReservationRequest) {}},
		{
			name:        "zero guests",
			mutate:      func(req *service.ReservationRequest) { req.NumberOfGuests = "0" },
			wantMessage: "Invalid number of guests.",
		},
		{
			name:        "non-numeric guests",
			mutate:      func(req *service.ReservationRequest) { req.NumberOfGuests = "many" },
			wantMessage: "Invalid number of guests.",
		},
		{
			name:        "missing name",
			mutate:      func(req *service.ReservationRequest) { req.Name = " " },
			wantMessage: "Please fill in all required fields.",
		},
		{
			name:        "bad date",
			mutate:      func(req *service.ReservationRequest) { req.Date = "02/11/2026" },
			wantMessage: "Enter a valid date.",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewReservationRepository(t)
			svc := service.NewReservationService(repo)

			req := validReservation()
			testCase.mutate(&req)
			if testCase.wantMessage == "" {
				repo.On("CreateReservation", mock.Anything, mock.AnythingOfType("*domain.Reservation")).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.Reservation).ID = 12 }).
					Return(nil).Once()
			}

			reservation, err := svc.Create(context.Background(), testCase.user, req)

			if testCase.wantMessage != "" {
				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, testCase.wantMessage, validationErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 12, reservation.ID)
			assert.Equal(t, 4, reservation.NumberOfGuests)
			assert.False(t, reservation.Confirmed)
			if testCase.user != nil {
				require.NotNil(t, reservation.UserID)
				assert.Equal(t, testCase.user.ID, *reservation.UserID)
			} else {
				assert.Nil(t, reservation.UserID)
			}
		})
	}
}

func TestReservationService_ConfirmIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewReservationRepository(t)
	svc := service.NewReservationService(repo)

	confirmed := &domain.Reservation{ID: 2, Name: "Alice", Confirmed: true}
	repo.On("ConfirmReservation", mock.Anything, 2).Return(confirmed, false, nil).Once()
	repo.On("ConfirmReservation", mock.Anything, 2).Return(confirmed, true, nil).Once()

	reservation, already, err := svc.Confirm(ctx, staff, 2)
	require.NoError(t, err)
	assert.False(t, already)
	assert.True(t, reservation.Confirmed)

	reservation, already, err = svc.Confirm(ctx, staff, 2)
	require.NoError(t, err)
	assert.True(t, already)
	assert.True(t, reservation.Confirmed)
}

func TestReservationService_ConfirmErrors(t *testing.T) {
	repo := mocks.NewReservationRepository(t)
	svc := service.NewReservationService(repo)

	repo.On("ConfirmReservation", mock.Anything, 404).Return(nil, false, domain.ErrNotFound).Once()

	_, _, err := svc.Confirm(context.Background(), staff, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = svc.Confirm(context.Background(), customer, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReviewService_Submit(t *testing.T) {
	burger := menuItem(1, "Burger", "9.99")

	tests := []struct {
		name         string
		user         *domain.User
		req          service.ReviewRequest
		prepareMocks func(repo *mocks.ReviewRepository, menu *mocks.MenuRepository, cache *mocks.ReviewCache, publisher *mocks.EventPublisher)
		wantErr      error
		wantMessage  string
	}{
		{
			name: "first review by customer",
			user: customer,
			req:  service.ReviewRequest{MenuItemID: "1", Rating: "5", Comment: " Great! "},
			prepareMocks: func(repo *mocks.ReviewRepository, menu *mocks.MenuRepository, cache *mocks.ReviewCache, publisher *mocks.EventPublisher) {
				menu.On("GetMenuItem", mock.Anything, 1).Return(burger, nil).Once()
				cache.On("ReviewMarkerKey", 1, customer.ID).Return("review:1:5").Once()
				cache.On("Exists", mock.Anything, "review:1:5").Return(false, nil).Once()
				repo.On("ReviewExists", mock.Anything, 1, customer.ID).Return(false, nil).Once()
				repo.On("CreateReview", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil).Once()
				cache.On("SetMarker", mock.Anything, "review:1:5").Return(nil).Once()
				publisher.On("Publish", mock.Anything, mock.MatchedBy(func(msg domain.KafkaMessage) bool {
					return msg.Type == domain.EventNewReview && msg.MenuItemID == 1 && msg.Rating == 5
				})).Return(nil).Once()
			},
		},
		{
			name: "duplicate caught by cache",
			user: customer,
			req:  service.ReviewRequest{MenuItemID: "1", Rating: "4"},
			prepareMocks: func(repo *mocks.ReviewRepository, menu *mocks.MenuRepository, cache *mocks.ReviewCache, publisher *mocks.EventPublisher) {
				menu.On("GetMenuItem", mock.Anything, 1).Return(burger, nil).Once()
				cache.On("ReviewMarkerKey", 1, customer.ID).Return("review:1:5").Once()
				cache.On("Exists", mock.Anything, "review:1:5").Return(true, nil).Once()
			},
			wantErr: domain.ErrDuplicateReview,
		},
		{
			name: "duplicate caught by database",
			user: customer,
			req:  service.ReviewRequest{MenuItemID: "1", Rating: "4"},
			prepareMocks: func(repo *mocks.ReviewRepository, menu *mocks.MenuRepository, cache *mocks.ReviewCache, publisher *mocks.EventPublisher) {
				menu.On("GetMenuItem", mock.Anything, 1).Return(burger, nil).Once()
				cache.On("ReviewMarkerKey", 1, customer.ID).Return("review:1:5").Once()
				cache.On("Exists", mock.Anything, "review:1:5").Return(false, nil).Once()
				repo.On("ReviewExists", mock.Anything, 1, customer.ID).Return(true, nil).Once()
				cache.On("SetMarker", mock.Anything, "review:1:5").Return(nil).Once()
			},
			wantErr: domain.ErrDuplicateReview,
		},
		{
			name: "anonymous review skips dedup",
			req:  service.ReviewRequest{MenuItemID: "1", Rating: "3"},
			prepareMocks: func(repo *mocks.ReviewRepository, menu *mocks.MenuRepository, cache *mocks.ReviewCache, publisher *mocks.EventPublisher) {
				menu.On("GetMenuItem", mock.Anything, 1).Return(burger, nil).Once()
				repo.On("CreateReview", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil).Once()
				publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "rating out of range",
			user: customer,
			req:  service.ReviewRequest{MenuItemID: "1", Rating: "6"},
			prepareMocks: func(*mocks.ReviewRepository, *mocks.MenuRepository, *mocks.ReviewCache, *mocks.EventPublisher) {
			},
			wantMessage: "Rating must be between 1 and 5.",
		},
		{
			name: "rating not a number",
			user: customer,
			req:  service.ReviewRequest{MenuItemID: "1", Rating: "five"},
			prepareMocks: func(*mocks.ReviewRepository, *mocks.MenuRepository, *mocks.ReviewCache, *mocks.EventPublisher) {
			},
			wantMessage: "Invalid rating value.",
		},
		{
			name: "missing fields",
			user: customer,
			req:  service.ReviewRequest{},
			prepareMocks: func(*mocks.ReviewRepository, *mocks.MenuRepository, *mocks.ReviewCache, *mocks.EventPublisher) {
			},
			wantMessage: "Please select a menu item and rating.",
		},
		{
			name: "unknown menu item",
			user: customer,
			req:  service.ReviewRequest{MenuItemID: "99", Rating: "4"},
			prepareMocks: func(repo *mocks.ReviewRepository, menu *mocks.MenuRepository, cache *mocks.ReviewCache, publisher *mocks.EventPublisher) {
				menu.On("GetMenuItem", mock.Anything, 99).Return(nil, domain.ErrNotFound).Once()
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewReviewRepository(t)
			menu := mocks.NewMenuRepository(t)
			cache := mocks.NewReviewCache(t)
			publisher := mocks.NewEventPublisher(t)
			svc := service.NewReviewService(repo, menu, cache, publisher)
			testCase.prepareMocks(repo, menu, cache, publisher)

			review, err := svc.Submit(context.Background(), testCase.user, testCase.req)

			switch {
			case testCase.wantErr != nil:
				assert.ErrorIs(t, err, testCase.wantErr)
			case testCase.wantMessage != "":
				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, testCase.wantMessage, validationErr.Message)
			default:
				require.NoError(t, err)
				assert.Equal(t, "Burger", review.MenuItemName)
				assert.Equal(t, testCase.user == nil, review.UserID == nil)
			}
		})
	}
}

func TestReviewService_AverageRating(t *testing.T) {
	repo := mocks.NewReviewRepository(t)
	svc := service.NewReviewService(repo, mocks.NewMenuRepository(t), mocks.NewReviewCache(t), nil)

	repo.On("ReviewStats", mock.Anything).Return(4.26, customer.CreatedAt, nil).Once()

	avg, err := svc.AverageRating(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.3, avg)
}
