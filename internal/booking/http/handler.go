package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wheelhouse/car-rental-backend/internal/auth"
	"github.com/wheelhouse/car-rental-backend/internal/booking"
	"github.com/wheelhouse/car-rental-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Create makes a new booking for a customer.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, "invalid request body", err.Error())
		return
	}

	caller, _ := auth.GetIdentity(c)

	b, err := h.service.Create(c.Request.Context(), caller, booking.CreateRequest{
		CustomerID:    body.CustomerID,
		VehicleID:     body.VehicleID,
		RentStartDate: body.RentStartDate,
		RentEndDate:   body.RentEndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "booking created successfully", NewBookingResponse(b))
}

// List returns the caller's bookings; admins see all bookings.
func (h *Handler) List(c *gin.Context) {
	caller, _ := auth.GetIdentity(c)

	bookings, err := h.service.List(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, NewBookingResponse(b))
	}

	message := "bookings retrieved successfully"
	if len(items) == 0 {
		message = "No bookings found"
	}
	response.OK(c, http.StatusOK, message, items)
}

// UpdateStatus transitions a booking to a new lifecycle status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, booking.ErrNotFound)
		return
	}

	var body UpdateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, "invalid request body", err.Error())
		return
	}

	caller, _ := auth.GetIdentity(c)

	b, err := h.service.UpdateStatus(c.Request.Context(), caller, id, body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "booking status updated successfully", NewBookingResponse(b))
}
