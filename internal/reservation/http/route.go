package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	// The availability probe backs the booking form and shares the exact
	// conflict predicate with reservation creation.
	g.GET("/reservations/availability", h.CheckAvailability)
	g.GET("/laboratories/:id/schedule", h.Schedule)

	group := g.Group("/reservations")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.POST("/:id/cancel", h.Cancel)
	}

	// === Staff Routes ===
	staffGroup := group.Group("")
	staffGroup.Use(staffMiddleware)
	{
		staffGroup.POST("/:id/approve", h.Approve)
		staffGroup.POST("/:id/reject", h.Reject)
	}
}
