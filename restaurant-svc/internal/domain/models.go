package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type MenuItem struct {
	ID           int             `json:"id"`
	CategoryID   int             `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url"`
	IsAvailable  bool            `json:"is_available"`
	AvgRating    float64         `json:"avg_rating"`
	ReviewCount  int             `json:"review_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Order struct {
	ID            int             `json:"id"`
	UserID        *int            `json:"user_id,omitempty"`
	Status        OrderStatus     `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	QRCode        string          `json:"qr_code,omitempty"`
	OrderDate     time.Time       `json:"order_date"`
	Items         []OrderItem     `json:"items"`
}

// Recalculate sets TotalAmount from the line prices.
func (o *Order) Recalculate() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	o.TotalAmount = total
}

type OrderItem struct {
	ID           int             `json:"id"`
	OrderID      int             `json:"order_id"`
	MenuItemID   int             `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Reservation struct {
	ID              int       `json:"id"`
	UserID          *int      `json:"user_id,omitempty"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	NumberOfGuests  int       `json:"number_of_guests"`
	SpecialRequests string    `json:"special_requests"`
	Confirmed       bool      `json:"confirmed"`
	CreatedAt       time.Time `json:"created_at"`
}

type Review struct {
	ID           int       `json:"id"`
	MenuItemID   int       `json:"menu_item_id"`
	MenuItemName string    `json:"menu_item_name,omitempty"`
	UserID       *int      `json:"user_id,omitempty"`
	Username     string    `json:"username,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	Groups       []string  `json:"groups,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayName is the full name when one is set, else the username.
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

type ContactForm struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type Session struct {
	ID     string `json:"id"`
	UserID *int   `json:"user_id,omitempty"`
	Draft  Draft  `json:"order"`
}

type PopularItem struct {
	MenuItemID int     `json:"menu_item_id"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
}
