package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"restaurant-hub/restaurant-svc/internal/domain"
)

type ReservationRequest struct {
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Date            string      `json:"date"`
	Time            string      `json:"time"`
	NumberOfGuests  json.Number `json:"number_of_guests"`
	SpecialRequests string      `json:"special_requests"`
}

type ReservationServiceInterface interface {
	Create(ctx context.Context, user *domain.User, req ReservationRequest) (*domain.Reservation, error)
	Confirm(ctx context.Context, staff *domain.User, id int) (*domain.Reservation, bool, error)
	ListUnconfirmed(ctx context.Context, staff *domain.User) ([]domain.Reservation, error)
}

type ReservationService struct {
	repo ReservationRepository
}

func NewReservationService(repo ReservationRepository) *ReservationService {
	return &ReservationService{repo: repo}
}

// Create records a reservation request. Anonymous visitors may reserve; the
// owning user is stored when there is one.
func (s *ReservationService) Create(ctx context.Context, user *domain.User, req ReservationRequest) (*domain.Reservation, error) {
	guestsRaw := strings.TrimSpace(string(req.NumberOfGuests))
	if guestsRaw == "" {
		return nil, invalid("number_of_guests", requiredFieldsMessage)
	}
	guests, err := strconv.Atoi(guestsRaw)
	if err != nil {
		return nil, invalid("number_of_guests", "Invalid number of guests.")
	}

	reservation := &domain.Reservation{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           strings.TrimSpace(req.Phone),
		Date:            strings.TrimSpace(req.Date),
		Time:            strings.TrimSpace(req.Time),
		NumberOfGuests:  guests,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
	}
	if user != nil {
		userID := user.ID
		reservation.UserID = &userID
	}
	if err := validateReservation(reservation); err != nil {
		return nil, err
	}

	if err := s.repo.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// Confirm flips confirmed to true. Confirming twice is not an error; the
// second call reports alreadyConfirmed.
func (s *ReservationService) Confirm(ctx context.Context, staff *domain.User, id int) (*domain.Reservation, bool, error) {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return nil, false, err
	}
	reservation, alreadyConfirmed, err := s.repo.ConfirmReservation(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !alreadyConfirmed {
		log.Printf("[restaurant-svc] reservation %d for %s confirmed by %s", id, reservation.Name, staff.Username)
	}
	return reservation, alreadyConfirmed, nil
}

func (s *ReservationService) ListUnconfirmed(ctx context.Context, staff *domain.User) ([]domain.Reservation, error) {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return nil, err
	}
	return s.repo.ListUnconfirmed(ctx)
}

var _ ReservationServiceInterface = (*ReservationService)(nil)
