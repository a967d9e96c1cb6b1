package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyDraft         = errors.New("your order is empty")
	ErrUnauthenticated    = errors.New("login required")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrDuplicateReview    = errors.New("you have already reviewed this menu item")
	ErrDuplicateName      = errors.New("an item with this name already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
)

// ValidationError reports bad form input. Nothing is written when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
