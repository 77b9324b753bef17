package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all vehicle directory routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/vehicles")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.GET("/:id/photo", h.Photo)
		group.GET("/:id/photo/thumbnail", h.Thumbnail)

		// === Admin Routes ===
		group.POST("", adminMiddleware, h.Create)
		group.PUT("/:id", adminMiddleware, h.Update)
		group.DELETE("/:id", adminMiddleware, h.Delete)
		group.PUT("/:id/photo", adminMiddleware, h.AttachPhoto)
	}
}
