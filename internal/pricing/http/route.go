package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/pricing")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("/rules", h.GetRules)
		group.POST("/quote", h.Quote)
	}

	// === Administration Routes ===
	adminGroup := group.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.PUT("/rules", h.SaveRules)
	}
}
