package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, optionalAuthMiddleware, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/laboratories")

	// === Public Routes ===
	// OptionalAuth lets staff callers see deactivated laboratories without
	// turning these endpoints private.
	group.GET("", optionalAuthMiddleware, h.List)
	group.GET("/categories", h.Categories)
	group.GET("/:id", optionalAuthMiddleware, h.Get)

	// === Staff Routes ===
	staffGroup := group.Group("")
	staffGroup.Use(authMiddleware, staffMiddleware)
	{
		staffGroup.POST("", h.Create)
		staffGroup.PATCH("/:id", h.Update)
		staffGroup.DELETE("/:id", h.Delete)
	}
}
