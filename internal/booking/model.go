package booking

import (
	"net/http"
	"time"

	"github.com/wheelhouse/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrCustomerNotFound   = apperror.New(http.StatusNotFound, "user not found")
	ErrVehicleNotFound    = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrAdminRenter        = apperror.New(http.StatusUnprocessableEntity, "admin accounts cannot rent vehicles")
	ErrForbidden          = apperror.New(http.StatusForbidden, "permission denied")
	ErrCustomerIDRequired = apperror.New(http.StatusUnprocessableEntity, "customer_id is required")
	ErrVehicleIDRequired  = apperror.New(http.StatusUnprocessableEntity, "vehicle_id is required")
	ErrStartDateRequired  = apperror.New(http.StatusUnprocessableEntity, "rent_start_date is required")
	ErrEndDateRequired    = apperror.New(http.StatusUnprocessableEntity, "rent_end_date is required")
	ErrInvalidStartDate   = apperror.New(http.StatusUnprocessableEntity, "invalid rent_start_date value")
	ErrInvalidEndDate     = apperror.New(http.StatusUnprocessableEntity, "invalid rent_end_date value")
	ErrInvalidDateRange   = apperror.New(http.StatusUnprocessableEntity, "rent_end_date must be after rent_start_date")
	ErrVehicleUnavailable = apperror.New(http.StatusConflict, "vehicle already booked")
	ErrAlreadyClosed      = apperror.New(http.StatusConflict, "booking already cancelled or returned")
	ErrAlreadyActive      = apperror.New(http.StatusConflict, "booking is already active")
	ErrStatusRequired     = apperror.New(http.StatusUnprocessableEntity, "status is required")
	ErrInvalidStatus      = apperror.New(http.StatusUnprocessableEntity, "invalid status, allowed are active, cancelled, returned")
	ErrCancelTooLate      = apperror.New(http.StatusConflict, "bookings can only be cancelled before the rental start date")
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusReturned  Status = "returned"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusReturned
}

// Booking represents a rental booking. The total price is fixed at creation
// time and never recomputed, even if the vehicle's daily rate later changes.
type Booking struct {
	ID            string // UUID
	CustomerID    string
	VehicleID     string
	RentStartDate time.Time // calendar date, midnight UTC
	RentEndDate   time.Time // calendar date, midnight UTC
	TotalPrice    float64
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Denormalized at read/creation time for caller convenience.
	CustomerName        string
	CustomerEmail       string
	VehicleName         string
	VehicleRegistration string
	DailyRentPrice      float64
}

// Filter defines parameters for listing bookings.
type Filter struct {
	CustomerID string
	Status     Status
}

// DurationDays returns the rental length in whole days between two calendar
// dates. A non-positive result means the range is invalid.
func DurationDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// Price is the price law: daily rate times rental length in days.
func Price(dailyRate float64, days int) float64 {
	return dailyRate * float64(days)
}

// ToDate truncates t to its calendar date in UTC. Time-of-day is discarded
// everywhere booking dates are compared.
func ToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date, accepting a bare date or a full
// RFC 3339 timestamp whose time-of-day is discarded.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return ToDate(t), nil
}
