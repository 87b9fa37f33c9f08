package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/announcements")

	// Notices are public so visitors see closures before logging in.
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	staffGroup := group.Group("")
	staffGroup.Use(authMiddleware, staffMiddleware)
	{
		staffGroup.POST("", h.Create)
		staffGroup.PATCH("/:id", h.Update)
		staffGroup.DELETE("/:id", h.Delete)
	}
}
