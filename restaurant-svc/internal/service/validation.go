package service

import (
	"net/mail"
	"strings"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var maxPrice = decimal.NewFromInt(10000)

const requiredFieldsMessage = "Please fill in all required fields."

func invalid(field, message string) error {
	return &domain.ValidationError{Field: field, Message: message}
}

func validateEmail(field, email string) error {
	if email == "" {
		return invalid(field, requiredFieldsMessage)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid(field, "Enter a valid email address.")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return invalid("price", "price must be greater than 0")
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return invalid("price", "price must be less than 10000")
	}
	if !price.Equal(price.Truncate(2)) {
		return invalid("price", "price must have at most 2 decimal places")
	}
	return nil
}

func validateMenuItem(item *domain.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Description = strings.TrimSpace(item.Description)

	if item.Name == "" {
		return invalid("name", "name is required")
	}
	if len(item.Name) > 200 {
		return invalid("name", "name must be at most 200 characters")
	}
	if item.Description == "" {
		return invalid("description", "description is required")
	}
	if item.CategoryID <= 0 {
		return invalid("category", "category is required")
	}
	return validatePrice(item.Price)
}

func validateReservation(r *domain.Reservation) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)

	if r.Name == "" || r.Date == "" || r.Time == "" {
		return invalid("reservation", requiredFieldsMessage)
	}
	if len(r.Name) > 100 {
		return invalid("name", "name must be at most 100 characters")
	}
	if err := validateEmail("email", r.Email); err != nil {
		return err
	}
	if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
		return invalid("date", "Enter a valid date.")
	}
	if _, err := time.Parse("15:04", r.Time); err != nil {
		return invalid("time", "Enter a valid time.")
	}
	if r.NumberOfGuests <= 0 {
		return invalid("number_of_guests", "Invalid number of guests.")
	}
	if len(r.Phone) > 20 {
		return invalid("phone", "phone must be at most 20 characters")
	}
	return nil
}
