package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	g.GET("/laboratories/:id/slots", h.ListByLaboratory)

	// === Staff Routes ===
	staffGroup := g.Group("/slots")
	staffGroup.Use(authMiddleware, staffMiddleware)
	{
		staffGroup.POST("", h.Create)
		staffGroup.PATCH("/:id", h.Update)
		staffGroup.DELETE("/:id", h.Delete)
	}
}
