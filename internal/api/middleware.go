package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wheelhouse/car-rental-backend/internal/auth"
	"github.com/wheelhouse/car-rental-backend/internal/pkg/response"
)

// RequireAdmin ensures the authenticated caller acts with the admin role.
// It MUST be used after auth.Required middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := auth.GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Body{
				Success: false,
				Message: "unauthenticated",
			})
			return
		}

		if !caller.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Body{
				Success: false,
				Message: "admin access required",
			})
			return
		}

		c.Next()
	}
}
