package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wheelhouse/car-rental-backend/internal/auth"
	"github.com/wheelhouse/car-rental-backend/internal/user"
)

// CreateRequest is a booking creation payload. Dates arrive as strings so
// the service controls the validation order; malformed dates must be
// reported after the customer checks, not at bind time.
type CreateRequest struct {
	CustomerID    string
	VehicleID     string
	RentStartDate string
	RentEndDate   string
}

// Service defines the booking lifecycle operations.
type Service interface {
	Create(ctx context.Context, caller auth.Identity, req CreateRequest) (*Booking, error)
	UpdateStatus(ctx context.Context, caller auth.Identity, id string, status string) (*Booking, error)
	List(ctx context.Context, caller auth.Identity) ([]*Booking, error)
}

type service struct {
	repo  Repository
	users user.Service

	now func() time.Time
}

// NewService creates a new booking Service.
func NewService(repo Repository, users user.Service) Service {
	return &service{
		repo:  repo,
		users: users,
		now:   time.Now,
	}
}

// Create validates a booking request and creates the booking. The checks
// run in a fixed order and the first violation wins. The availability check,
// the booking insert and the vehicle flip happen atomically in the
// repository, so two concurrent requests for the same vehicle cannot both
// succeed.
func (s *service) Create(ctx context.Context, caller auth.Identity, req CreateRequest) (*Booking, error) {
	// 1. Field presence
	if req.CustomerID == "" {
		return nil, ErrCustomerIDRequired
	}
	if req.VehicleID == "" {
		return nil, ErrVehicleIDRequired
	}
	if req.RentStartDate == "" {
		return nil, ErrStartDateRequired
	}
	if req.RentEndDate == "" {
		return nil, ErrEndDateRequired
	}

	// 2. Customer must exist
	if _, err := uuid.Parse(req.CustomerID); err != nil {
		return nil, ErrCustomerNotFound
	}
	renter, err := s.users.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	// 3. An admin account can never be the renter
	if renter.Role == auth.RoleAdmin {
		return nil, ErrAdminRenter
	}

	// 4. Customers may only book for themselves
	if !caller.IsAdmin() && caller.ID != renter.ID {
		return nil, ErrForbidden
	}

	// 5. Dates must parse as calendar dates
	start, err := ParseDate(req.RentStartDate)
	if err != nil {
		return nil, ErrInvalidStartDate
	}
	end, err := ParseDate(req.RentEndDate)
	if err != nil {
		return nil, ErrInvalidEndDate
	}

	// 6. The rental must span at least one day
	if DurationDays(start, end) <= 0 {
		return nil, ErrInvalidDateRange
	}

	// 7+8. Vehicle existence and availability are checked under lock inside
	// the creation transaction.
	if _, err := uuid.Parse(req.VehicleID); err != nil {
		return nil, ErrVehicleNotFound
	}

	b := &Booking{
		CustomerID:    renter.ID,
		VehicleID:     req.VehicleID,
		RentStartDate: start,
		RentEndDate:   end,
		Status:        StatusActive,
		CustomerName:  renter.Name,
		CustomerEmail: renter.Email,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if !isDomainError(err) {
			log.Error().Err(err).Str("vehicle_id", req.VehicleID).Msg("failed to create booking")
		}
		return nil, err
	}

	log.Info().
		Str("booking_id", b.ID).
		Str("vehicle_id", b.VehicleID).
		Float64("total_price", b.TotalPrice).
		Msg("booking created")

	return b, nil
}

// UpdateStatus drives the booking state machine: active -> cancelled or
// active -> returned. Terminal states permit no further transitions. Only
// an admin may mark a booking returned; only the owning customer may cancel,
// and only before the rental period begins. Either terminal transition frees
// the vehicle, since both end the active rental.
func (s *service) UpdateStatus(ctx context.Context, caller auth.Identity, id string, status string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status.Terminal() {
		return nil, ErrAlreadyClosed
	}

	if status == "" {
		return nil, ErrStatusRequired
	}
	to := Status(status)
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	if to == StatusActive {
		return nil, ErrAlreadyActive
	}

	// A non-owning, non-admin caller is rejected before the role-specific
	// checks below.
	if !caller.IsAdmin() && caller.ID != b.CustomerID {
		return nil, ErrForbidden
	}
	if to == StatusReturned && !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	if to == StatusCancelled && caller.Role != auth.RoleCustomer {
		return nil, ErrForbidden
	}

	// Cancellation is only permitted before the rental period begins.
	// Returns stay legal at any time while the booking is active.
	if to == StatusCancelled {
		today := ToDate(s.now())
		if !today.Before(b.RentStartDate) {
			return nil, ErrCancelTooLate
		}
	}

	updated, err := s.repo.Transition(ctx, id, to)
	if err != nil {
		if !isDomainError(err) {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")
		}
		return nil, err
	}

	log.Info().
		Str("booking_id", updated.ID).
		Str("status", string(updated.Status)).
		Msg("booking status updated")

	return updated, nil
}

// List returns bookings visible to the caller: customers see only their own,
// admins see all.
func (s *service) List(ctx context.Context, caller auth.Identity) ([]*Booking, error) {
	var f Filter
	if !caller.IsAdmin() {
		f.CustomerID = caller.ID
	}
	return s.repo.List(ctx, f)
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrVehicleNotFound) ||
		errors.Is(err, ErrVehicleUnavailable) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyClosed)
}
