package tests

import (
	"context"
	"errors"
	"testing"

	"restaurant-hub/restaurant-svc/internal/domain"
	"restaurant-hub/restaurant-svc/internal/mocks"
	"restaurant-hub/restaurant-svc/internal/service"
	"restaurant-hub/restaurant-svc/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// storePrices mimics PlaceOrder reading unit prices from menu_items.
func storePrices(orderID int, prices map[int]decimal.Decimal) func(mock.Arguments) {
	return func(args mock.Arguments) {
		order := args.Get(1).(*domain.Order)
		for i := range order.Items {
			order.Items[i].Price = prices[order.Items[i].MenuItemID]
		}
		order.Recalculate()
		order.ID = orderID
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	burger := menuItem(1, "Burger", "9.99")
	salad := menuItem(2, "Salad", "5.00")

	tests := []struct {
		name         string
		user         *domain.User
		items        []*domain.MenuItem
		form         domain.ContactForm
		prepareMocks func(orders *mocks.OrderRepository, qr *mocks.QRGenerator, publisher *mocks.EventPublisher)
		wantOrderID  int
		wantErr      error
		wantCleared  bool
	}{
		{
			name:         "empty draft creates nothing",
			user:         customer,
			prepareMocks: func(*mocks.OrderRepository, *mocks.QRGenerator, *mocks.EventPublisher) {},
			wantErr:      domain.ErrEmptyDraft,
		},
		{
			name:         "anonymous user",
			user:         nil,
			items:        []*domain.MenuItem{burger},
			prepareMocks: func(*mocks.OrderRepository, *mocks.QRGenerator, *mocks.EventPublisher) {},
			wantErr:      domain.ErrUnauthenticated,
		},
		{
			name:  "menu item removed before checkout",
			user:  customer,
			items: []*domain.MenuItem{burger},
			prepareMocks: func(orders *mocks.OrderRepository, _ *mocks.QRGenerator, _ *mocks.EventPublisher) {
				orders.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(domain.ErrNotFound).Once()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:  "places order and clears draft",
			user:  customer,
			items: []*domain.MenuItem{burger, burger, salad},
			prepareMocks: func(orders *mocks.OrderRepository, qr *mocks.QRGenerator, publisher *mocks.EventPublisher) {
				orders.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Run(storePrices(7, map[int]decimal.Decimal{1: price("9.99"), 2: price("5.00")})).
					Return(nil).Once()
				qr.On("Generate", 7).Return([]byte("png"), nil).Once()
				orders.On("SaveQRCode", mock.Anything, 7, []byte("png")).Return(nil).Once()
				publisher.On("Publish", mock.Anything, mock.MatchedBy(func(msg domain.KafkaMessage) bool {
					return msg.Type == domain.EventOrderPlaced && msg.OrderID == 7
				})).Return(nil).Twice()
			},
			wantOrderID: 7,
			wantCleared: true,
		},
		{
			name:  "side effect failures do not fail checkout",
			user:  customer,
			items: []*domain.MenuItem{salad},
			prepareMocks: func(orders *mocks.OrderRepository, qr *mocks.QRGenerator, publisher *mocks.EventPublisher) {
				orders.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Run(storePrices(8, map[int]decimal.Decimal{2: price("5.00")})).
					Return(nil).Once()
				qr.On("Generate", 8).Return(nil, errors.New("encoder failed")).Once()
				publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			wantOrderID: 8,
			wantCleared: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ctx := context.Background()
			orders := mocks.NewOrderRepository(t)
			qr := mocks.NewQRGenerator(t)
			publisher := mocks.NewEventPublisher(t)
			sessions := storage.NewMemorySessionStore()
			svc := service.NewCheckoutService(orders, sessions, qr, publisher)
			testCase.prepareMocks(orders, qr, publisher)

			sess := newSession(t, sessions, testCase.items...)
			before := sess.Draft.Len()

			orderID, err := svc.Checkout(ctx, testCase.user, sess, testCase.form)

			stored, loadErr := sessions.Load(ctx, sess.ID)
			require.NoError(t, loadErr)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Zero(t, orderID)
				assert.Equal(t, before, stored.Draft.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantOrderID, orderID)
			assert.Equal(t, testCase.wantCleared, stored.Draft.IsEmpty())
		})
	}
}

func TestCheckoutService_OrderMatchesDraft(t *testing.T) {
	ctx := context.Background()
	orders := mocks.NewOrderRepository(t)
	sessions := storage.NewMemorySessionStore()
	svc := service.NewCheckoutService(orders, sessions, nil, nil)

	a := menuItem(1, "A", "9.99")
	b := menuItem(2, "B", "5.00")
	sess := newSession(t, sessions, a, a, b)

	var placed *domain.Order
	orders.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			storePrices(11, map[int]decimal.Decimal{1: price("9.99"), 2: price("5.00")})(args)
			placed = args.Get(1).(*domain.Order)
		}).
		Return(nil).Once()

	orderID, err := svc.Checkout(ctx, customer, sess, domain.ContactForm{})
	require.NoError(t, err)
	assert.Equal(t, 11, orderID)

	require.NotNil(t, placed)
	assert.Equal(t, domain.StatusPending, placed.Status)
	assert.Equal(t, "24.98", placed.TotalAmount.StringFixed(2))
	require.Len(t, placed.Items, 2)
	assert.Equal(t, 1, placed.Items[0].MenuItemID)
	assert.Equal(t, 2, placed.Items[0].Quantity)
	assert.Equal(t, "9.99", placed.Items[0].Price.StringFixed(2))
	assert.Equal(t, 2, placed.Items[1].MenuItemID)
	assert.Equal(t, 1, placed.Items[1].Quantity)
	assert.Equal(t, "5.00", placed.Items[1].Price.StringFixed(2))

	assert.Equal(t, "Alice Smith", placed.CustomerName)
	assert.Equal(t, "alice@example.com", placed.CustomerEmail)
	require.NotNil(t, placed.UserID)
	assert.Equal(t, customer.ID, *placed.UserID)
	assert.True(t, sess.Draft.IsEmpty())
}

func TestCheckoutService_ContactValidation(t *testing.T) {
	tests := []struct {
		name      string
		user      *domain.User
		form      domain.ContactForm
		wantField string
	}{
		{
			name:      "no email anywhere",
			user:      &domain.User{ID: 3, Username: "carol"},
			wantField: "customer_email",
		},
		{
			name:      "malformed email",
			user:      customer,
			form:      domain.ContactForm{CustomerEmail: "not-an-email"},
			wantField: "customer_email",
		},
		{
			name:      "phone too long",
			user:      customer,
			form:      domain.ContactForm{CustomerPhone: "123456789012345678901"},
			wantField: "customer_phone",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			sessions := storage.NewMemorySessionStore()
			svc := service.NewCheckoutService(mocks.NewOrderRepository(t), sessions, nil, nil)
			sess := newSession(t, sessions, menuItem(1, "Burger", "9.99"))

			_, err := svc.Checkout(context.Background(), testCase.user, sess, testCase.form)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, testCase.wantField, validationErr.Field)
			assert.Equal(t, 1, sess.Draft.Len())
		})
	}
}

func TestCheckoutService_Preview(t *testing.T) {
	sessions := storage.NewMemorySessionStore()
	svc := service.NewCheckoutService(mocks.NewOrderRepository(t), sessions, nil, nil)

	_, err := svc.Preview(customer, &domain.Session{})
	assert.ErrorIs(t, err, domain.ErrEmptyDraft)

	sess := newSession(t, sessions, menuItem(1, "Burger", "9.99"))
	preview, err := svc.Preview(customer, sess)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", preview.CustomerName)
	assert.Equal(t, "alice@example.com", preview.CustomerEmail)
	assert.Equal(t, "9.99", preview.TotalPrice.StringFixed(2))
	assert.Len(t, preview.Items, 1)
}
