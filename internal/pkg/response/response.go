package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/wheelhouse/car-rental-backend/internal/pkg/apperror"
)

// Body is the envelope every endpoint responds with.
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// OK sends a success envelope with the given status code.
func OK(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Body{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a failure envelope. AppError values determine the status code;
// anything else is a storage or infrastructure fault and is surfaced as 500
// with its underlying message, since operators need the detail.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, Body{
			Success: false,
			Message: appErr.Message,
		})
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")

	c.JSON(http.StatusInternalServerError, Body{
		Success: false,
		Message: err.Error(),
	})
}

// ValidationError sends a 422 envelope with binding details attached.
func ValidationError(c *gin.Context, message string, details any) {
	c.JSON(http.StatusUnprocessableEntity, Body{
		Success: false,
		Message: message,
		Errors:  details,
	})
}
