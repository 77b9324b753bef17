package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all booking lifecycle routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.PUT("/:id", h.UpdateStatus)
	}
}
