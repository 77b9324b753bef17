package http

import (
	"time"

	"github.com/wheelhouse/car-rental-backend/internal/vehicle"
)

// CreateVehicleBody is the payload for registering a vehicle.
type CreateVehicleBody struct {
	VehicleName        string  `json:"vehicle_name"`
	Type               string  `json:"type"`
	RegistrationNumber string  `json:"registration_number"`
	DailyRentPrice     float64 `json:"daily_rent_price"`
	AvailabilityStatus string  `json:"availability_status"`
}

// UpdateVehicleBody carries optional vehicle updates.
type UpdateVehicleBody struct {
	VehicleName        *string  `json:"vehicle_name"`
	Type               *string  `json:"type"`
	RegistrationNumber *string  `json:"registration_number"`
	DailyRentPrice     *float64 `json:"daily_rent_price"`
	AvailabilityStatus *string  `json:"availability_status"`
}

// VehicleResponse is the shape of vehicle data returned in API responses.
type VehicleResponse struct {
	ID                 string    `json:"id"`
	VehicleName        string    `json:"vehicle_name"`
	Type               string    `json:"type"`
	RegistrationNumber string    `json:"registration_number"`
	DailyRentPrice     float64   `json:"daily_rent_price"`
	AvailabilityStatus string    `json:"availability_status"`
	PhotoURL           *string   `json:"photo_url,omitempty"`
	ThumbnailURL       *string   `json:"thumbnail_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewVehicleResponse converts a domain vehicle to its API representation.
func NewVehicleResponse(v *vehicle.Vehicle) VehicleResponse {
	resp := VehicleResponse{
		ID:                 v.ID,
		VehicleName:        v.VehicleName,
		Type:               string(v.Type),
		RegistrationNumber: v.RegistrationNumber,
		DailyRentPrice:     v.DailyRentPrice,
		AvailabilityStatus: string(v.AvailabilityStatus),
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
	if v.PhotoPath != nil {
		u := "/v1/vehicles/" + v.ID + "/photo"
		resp.PhotoURL = &u
	}
	if v.ThumbnailPath != nil {
		u := "/v1/vehicles/" + v.ID + "/photo/thumbnail"
		resp.ThumbnailURL = &u
	}
	return resp
}
