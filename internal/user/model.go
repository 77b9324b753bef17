package user

import (
	"net/http"
	"time"

	"github.com/wheelhouse/car-rental-backend/internal/auth"
	"github.com/wheelhouse/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already registered")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrNameRequired       = apperror.New(http.StatusUnprocessableEntity, "name is required")
	ErrEmailRequired      = apperror.New(http.StatusUnprocessableEntity, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusUnprocessableEntity, "password must be at least 8 characters")
	ErrInvalidRole        = apperror.New(http.StatusUnprocessableEntity, "role must be one of customer, admin")
	ErrForbidden          = apperror.New(http.StatusForbidden, "permission denied")
)

// User represents an account in the system, customer or admin.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         auth.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the caller identity this user acts as.
func (u *User) Identity() auth.Identity {
	return auth.Identity{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}
