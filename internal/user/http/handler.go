package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wheelhouse/car-rental-backend/internal/auth"
	"github.com/wheelhouse/car-rental-backend/internal/pkg/response"
	"github.com/wheelhouse/car-rental-backend/internal/user"
)

type Handler struct {
	service    user.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service user.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
	}
}

// Signup registers a new account.
func (h *Handler) Signup(c *gin.Context) {
	var body RegisterBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, "invalid request body", err.Error())
		return
	}

	u, err := h.service.Register(c.Request.Context(), user.RegisterRequest{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Phone:    body.Phone,
		Role:     body.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "user registered successfully", NewUserResponse(u))
}

// Signin authenticates a user and returns a JWT access token.
func (h *Handler) Signin(c *gin.Context) {
	var body SigninBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, "invalid request body", err.Error())
		return
	}

	u, err := h.service.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.Identity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "signed in successfully", SigninResponse{
		Token: token,
		User:  NewUserResponse(u),
	})
}

// List returns all users. Admin only; enforced by route middleware.
func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, NewUserResponse(u))
	}

	message := "users retrieved successfully"
	if len(items) == 0 {
		message = "No users found"
	}
	response.OK(c, http.StatusOK, message, items)
}

// Get returns a single user. Customers may only fetch themselves.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.ValidationError(c, "invalid user id", nil)
		return
	}

	caller, _ := auth.GetIdentity(c)
	if !caller.IsAdmin() && caller.ID != id {
		response.Error(c, user.ErrForbidden)
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "user retrieved successfully", NewUserResponse(u))
}

// Update applies partial account updates. Customers may only update
// themselves and may not change roles.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.ValidationError(c, "invalid user id", nil)
		return
	}

	caller, _ := auth.GetIdentity(c)
	if !caller.IsAdmin() && caller.ID != id {
		response.Error(c, user.ErrForbidden)
		return
	}

	var body UpdateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, "invalid request body", err.Error())
		return
	}

	if body.Role != nil && !caller.IsAdmin() {
		response.Error(c, user.ErrForbidden)
		return
	}

	u, err := h.service.Update(c.Request.Context(), id, user.UpdateRequest{
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
		Role:  body.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "user updated successfully", NewUserResponse(u))
}
