package service

import (
	"context"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"
	"restaurant-hub/restaurant-svc/internal/storage"
)

type MenuRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id int) error
	ListAvailableItems(ctx context.Context) ([]domain.MenuItem, error)
	CountAvailableItems(ctx context.Context) (int, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) error
	UpdateMenuItemImage(ctx context.Context, id int, imageURL string) error
}

type OrderRepository interface {
	PlaceOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrdersByStatus(ctx context.Context, statuses ...domain.OrderStatus) ([]domain.Order, error)
	ListOrdersForUser(ctx context.Context, userID int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int, from, to domain.OrderStatus) error
	SaveQRCode(ctx context.Context, id int, qr []byte) error
	GetQRCode(ctx context.Context, id int) ([]byte, error)
	PopularToday(ctx context.Context, limit int) ([]domain.PopularItem, error)
}

type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation *domain.Reservation) error
	ConfirmReservation(ctx context.Context, id int) (*domain.Reservation, bool, error)
	ListUnconfirmed(ctx context.Context) ([]domain.Reservation, error)
	ListReservationsForUser(ctx context.Context, userID int) ([]domain.Reservation, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *domain.Review) error
	ReviewExists(ctx context.Context, menuItemID, userID int) (bool, error)
	ListRecentReviews(ctx context.Context, limit int) ([]domain.Review, error)
	ListReviewsForUser(ctx context.Context, userID int) ([]domain.Review, error)
	ListReviewsForItem(ctx context.Context, menuItemID int) ([]domain.Review, error)
	ReviewStats(ctx context.Context) (avg float64, first time.Time, err error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	AddUserToGroup(ctx context.Context, userID int, group string) error
}

// SessionStore persists sessions between requests. Writes for the same
// session are last-write-wins.
type SessionStore interface {
	New() *domain.Session
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, id string) error
}

type ReviewCache interface {
	ReviewMarkerKey(menuItemID, userID int) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type PopularityBoard interface {
	TopToday(ctx context.Context, limit int) ([]domain.PopularItem, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, msg domain.KafkaMessage) error
}

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

var (
	_ MenuRepository        = (*storage.PostgresRepository)(nil)
	_ OrderRepository       = (*storage.PostgresRepository)(nil)
	_ ReservationRepository = (*storage.PostgresRepository)(nil)
	_ ReviewRepository      = (*storage.PostgresRepository)(nil)
	_ UserRepository        = (*storage.PostgresRepository)(nil)
	_ SessionStore          = (*storage.RedisSessionStore)(nil)
	_ SessionStore          = (*storage.MemorySessionStore)(nil)
	_ ReviewCache           = (*storage.RedisCache)(nil)
	_ PopularityBoard       = (*storage.RedisCache)(nil)
	_ EventPublisher        = (*storage.KafkaPublisher)(nil)
	_ QRGenerator           = DefaultQRGenerator{}
)
