package http

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wheelhouse/car-rental-backend/internal/pkg/response"
	"github.com/wheelhouse/car-rental-backend/internal/vehicle"
)

type Handler struct {
	service vehicle.Service
}

func NewHandler(service vehicle.Service) *Handler {
	return &Handler{service: service}
}

// Create registers a new vehicle. Admin only; enforced by route middleware.
func (h *Handler) Create(c *gin.Context) {
	var body CreateVehicleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, "invalid request body", err.Error())
		return
	}

	v, err := h.service.Create(c.Request.Context(), vehicle.CreateRequest{
		VehicleName:        body.VehicleName,
		Type:               body.Type,
		RegistrationNumber: body.RegistrationNumber,
		DailyRentPrice:     body.DailyRentPrice,
		AvailabilityStatus: body.AvailabilityStatus,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "vehicle created successfully", NewVehicleResponse(v))
}

// List returns all vehicles in the fleet.
func (h *Handler) List(c *gin.Context) {
	vehicles, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		items = append(items, NewVehicleResponse(v))
	}

	message := "vehicles retrieved successfully"
	if len(items) == 0 {
		message = "No vehicles found"
	}
	response.OK(c, http.StatusOK, message, items)
}

// Get returns a single vehicle by id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "vehicle retrieved successfully", NewVehicleResponse(v))
}

// Update applies partial vehicle updates. Admin only.
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	var body UpdateVehicleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, "invalid request body", err.Error())
		return
	}

	v, err := h.service.Update(c.Request.Context(), id, vehicle.UpdateRequest{
		VehicleName:        body.VehicleName,
		Type:               body.Type,
		RegistrationNumber: body.RegistrationNumber,
		DailyRentPrice:     body.DailyRentPrice,
		AvailabilityStatus: body.AvailabilityStatus,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "vehicle updated successfully", NewVehicleResponse(v))
}

// Delete removes a vehicle. Refused while the vehicle has an active booking.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "vehicle deleted successfully", nil)
}

// AttachPhoto stores an uploaded vehicle photo and its thumbnail. Admin only.
func (h *Handler) AttachPhoto(c *gin.Context) {
	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		response.ValidationError(c, "photo file is required", err.Error())
		return
	}

	v, err := h.service.AttachPhoto(c.Request.Context(), id, header)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "vehicle photo uploaded successfully", NewVehicleResponse(v))
}

// Photo streams the stored vehicle photo.
func (h *Handler) Photo(c *gin.Context) {
	h.streamPhoto(c, h.service.Photo)
}

// Thumbnail streams the stored vehicle photo thumbnail.
func (h *Handler) Thumbnail(c *gin.Context) {
	h.streamPhoto(c, h.service.Thumbnail)
}

func (h *Handler) streamPhoto(c *gin.Context, open func(ctx context.Context, id string) (io.ReadCloser, error)) {
	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	rc, err := open(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) vehicleID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.ValidationError(c, "invalid vehicle id", nil)
		return "", false
	}
	return id, true
}
