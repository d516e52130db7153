package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts client record management. Every route is admin only.
func RegisterRoutes(g *gin.RouterGroup, h *ClientHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	clients := g.Group("/clients")
	clients.Use(authMiddleware, adminMiddleware)
	{
		clients.GET("", h.List)
		clients.POST("", h.Create)
		clients.GET("/:id", h.Get)
		clients.PATCH("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
	}
}
