package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers photo routes.
func RegisterRoutes(r gin.IRouter, handler *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	labGroup := r.Group("/laboratories/:id/photos")
	{
		labGroup.GET("", handler.List)
		labGroup.POST("", authMiddleware, staffMiddleware, handler.Upload)
	}

	photoGroup := r.Group("/photos")
	{
		photoGroup.GET("/:id", handler.ServePhoto)
		photoGroup.GET("/:id/thumbnail", handler.ServeThumbnail)
		photoGroup.DELETE("/:id", authMiddleware, staffMiddleware, handler.Delete)
	}
}
