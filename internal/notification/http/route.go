package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/notifications")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("/push", h.Push)
		group.POST("/sync", h.Sync)
		group.POST("/action", h.Action)
		group.POST("/:id/read", h.MarkRead)
		group.DELETE("/:id", h.Delete)
	}
}
