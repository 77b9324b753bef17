package vehicle

import (
	"net/http"
	"time"

	"github.com/wheelhouse/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound               = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrRegistrationRequired   = apperror.New(http.StatusUnprocessableEntity, "registration_number is required")
	ErrRegistrationTaken      = apperror.New(http.StatusConflict, "registration_number is already registered")
	ErrNameRequired           = apperror.New(http.StatusUnprocessableEntity, "vehicle_name is required")
	ErrInvalidType            = apperror.New(http.StatusUnprocessableEntity, "type must be one of car, bike, van, SUV")
	ErrInvalidStatus          = apperror.New(http.StatusUnprocessableEntity, "availability_status must be one of available, booked")
	ErrNegativePrice          = apperror.New(http.StatusUnprocessableEntity, "daily_rent_price must be a non-negative number")
	ErrHasActiveBooking       = apperror.New(http.StatusConflict, "vehicle has an active booking")
	ErrPhotoNotFound          = apperror.New(http.StatusNotFound, "vehicle has no photo")
	ErrUnsupportedPhotoFormat = apperror.New(http.StatusUnprocessableEntity, "photo must be an image")
)

// AvailabilityStatus mirrors whether the vehicle currently has an active
// booking. Only the booking lifecycle flips it between the two values.
type AvailabilityStatus string

const (
	StatusAvailable AvailabilityStatus = "available"
	StatusBooked    AvailabilityStatus = "booked"
)

// Valid reports whether s is one of the known availability statuses.
func (s AvailabilityStatus) Valid() bool {
	return s == StatusAvailable || s == StatusBooked
}

// Type is the vehicle category.
type Type string

const (
	TypeCar  Type = "car"
	TypeBike Type = "bike"
	TypeVan  Type = "van"
	TypeSUV  Type = "SUV"
)

// Valid reports whether t is one of the known vehicle types.
func (t Type) Valid() bool {
	switch t {
	case TypeCar, TypeBike, TypeVan, TypeSUV:
		return true
	}
	return false
}

// Vehicle represents a rentable vehicle in the fleet.
type Vehicle struct {
	ID                 string // UUID
	VehicleName        string
	Type               Type
	RegistrationNumber string
	DailyRentPrice     float64
	AvailabilityStatus AvailabilityStatus
	PhotoPath          *string
	ThumbnailPath      *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
