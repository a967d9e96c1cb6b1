package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"restaurant-hub/restaurant-svc/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]{1,150}$`)

const minPasswordLength = 8

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Profile struct {
	User         *domain.User         `json:"user"`
	Orders       []domain.Order       `json:"orders"`
	Reservations []domain.Reservation `json:"reservations"`
	Reviews      []domain.Review      `json:"reviews"`
}

type AuthServiceInterface interface {
	Register(ctx context.Context, sess *domain.Session, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, sess *domain.Session, req LoginRequest) (*domain.User, error)
	StaffLogin(ctx context.Context, sess *domain.Session, req LoginRequest) (*domain.User, error)
	Logout(ctx context.Context, sess *domain.Session) error
	CurrentUser(ctx context.Context, sess *domain.Session) (*domain.User, error)
	Profile(ctx context.Context, user *domain.User) (*Profile, error)
	GrantStaff(ctx context.Context, username string) error
}

type AuthService struct {
	users        UserRepository
	sessions     SessionStore
	orders       OrderRepository
	reservations ReservationRepository
	reviews      ReviewRepository
}

func NewAuthService(users UserRepository, sessions SessionStore, orders OrderRepository, reservations ReservationRepository, reviews ReviewRepository) *AuthService {
	return &AuthService{
		users:        users,
		sessions:     sessions,
		orders:       orders,
		reservations: reservations,
		reviews:      reviews,
	}
}

// Register creates a customer account and signs the session in as it.
func (s *AuthService) Register(ctx context.Context, sess *domain.Session, req RegisterRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password1 == "" || req.Password2 == "" {
		return nil, invalid("username", requiredFieldsMessage)
	}
	if !usernamePattern.MatchString(username) {
		return nil, invalid("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	if req.Password1 != req.Password2 {
		return nil, invalid("password2", "The two password fields didn't match.")
	}
	if len(req.Password1) < minPasswordLength {
		return nil, invalid("password2", "This password is too short. It must contain at least 8 characters.")
	}
	email := strings.TrimSpace(req.Email)
	if email != "" {
		if err := validateEmail("email", email); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("[restaurant-svc] user %d (%s) registered", user.ID, user.Username)

	if err := s.bind(ctx, sess, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, sess *domain.Session, req LoginRequest) (*domain.User, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.bind(ctx, sess, user); err != nil {
		return nil, err
	}
	return user, nil
}

// StaffLogin only signs in users holding the staff role.
func (s *AuthService) StaffLogin(ctx context.Context, sess *domain.Session, req LoginRequest) (*domain.User, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	if !domain.HasRole(user, domain.RoleStaff) {
		return nil, domain.ErrForbidden
	}
	if err := s.bind(ctx, sess, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) error {
	if sess == nil {
		return nil
	}
	sess.UserID = nil
	sess.Draft.Clear()
	return s.sessions.Delete(ctx, sess.ID)
}

// CurrentUser resolves the session's user. A dangling user id signs the
// session out instead of failing the request.
func (s *AuthService) CurrentUser(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	if sess == nil || sess.UserID == nil {
		return nil, nil
	}
	user, err := s.users.GetUser(ctx, *sess.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		sess.UserID = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Profile(ctx context.Context, user *domain.User) (*Profile, error) {
	if err := domain.RequireRole(user, domain.RoleCustomer); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListOrdersForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListReservationsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListReviewsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		User:         user,
		Orders:       orders,
		Reservations: reservations,
		Reviews:      reviews,
	}, nil
}

func (s *AuthService) GrantStaff(ctx context.Context, username string) error {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if err := s.users.AddUserToGroup(ctx, user.ID, domain.StaffGroup); err != nil {
		return err
	}
	log.Printf("[restaurant-svc] user %s added to %s group", user.Username, domain.StaffGroup)
	return nil
}

func (s *AuthService) authenticate(ctx context.Context, req LoginRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, invalid("username", requiredFieldsMessage)
	}
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// bind signs user in on a newly issued session id. The draft moves over and
// the previous id stops resolving; sess is updated in place.
func (s *AuthService) bind(ctx context.Context, sess *domain.Session, user *domain.User) error {
	previousID := sess.ID
	rotated := s.sessions.New()
	rotated.Draft = sess.Draft
	userID := user.ID
	rotated.UserID = &userID
	if err := s.sessions.Save(ctx, rotated); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if previousID != "" && previousID != rotated.ID {
		if err := s.sessions.Delete(ctx, previousID); err != nil {
			log.Printf("[restaurant-svc] Warning: failed to drop session %s after sign-in: %v", previousID, err)
		}
	}
	*sess = *rotated
	return nil
}

var _ AuthServiceInterface = (*AuthService)(nil)
