package http

import (
	"time"

	"github.com/wheelhouse/car-rental-backend/internal/booking"
)

// CreateBookingBody is the payload for creating a booking. Fields are left
// unvalidated at bind time; the service reports missing or malformed values
// in its own fixed order.
type CreateBookingBody struct {
	CustomerID    string `json:"customer_id"`
	VehicleID     string `json:"vehicle_id"`
	RentStartDate string `json:"rent_start_date"`
	RentEndDate   string `json:"rent_end_date"`
}

// UpdateBookingBody is the payload for a status transition.
type UpdateBookingBody struct {
	Status string `json:"status"`
}

// CustomerTag is the denormalized customer snapshot on a booking view.
type CustomerTag struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// VehicleTag is the denormalized vehicle snapshot on a booking view.
type VehicleTag struct {
	VehicleName        string  `json:"vehicle_name"`
	RegistrationNumber string  `json:"registration_number,omitempty"`
	DailyRentPrice     float64 `json:"daily_rent_price,omitempty"`
}

// BookingResponse is the shape of booking data returned in API responses.
type BookingResponse struct {
	ID            string      `json:"id"`
	CustomerID    string      `json:"customer_id"`
	VehicleID     string      `json:"vehicle_id"`
	RentStartDate string      `json:"rent_start_date"`
	RentEndDate   string      `json:"rent_end_date"`
	TotalPrice    float64     `json:"total_price"`
	Status        string      `json:"status"`
	Customer      CustomerTag `json:"customer"`
	Vehicle       VehicleTag  `json:"vehicle"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

const dateLayout = "2006-01-02"

// NewBookingResponse converts a domain booking to its API representation.
func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		VehicleID:     b.VehicleID,
		RentStartDate: b.RentStartDate.Format(dateLayout),
		RentEndDate:   b.RentEndDate.Format(dateLayout),
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		Customer: CustomerTag{
			Name:  b.CustomerName,
			Email: b.CustomerEmail,
		},
		Vehicle: VehicleTag{
			VehicleName:        b.VehicleName,
			RegistrationNumber: b.VehicleRegistration,
			DailyRentPrice:     b.DailyRentPrice,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
