package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/pricing")

	group.Use(authMiddleware)
	{
		group.GET("/config", h.GetConfig)
	}

	// Only admins may change prices.
	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.PUT("/config", h.PutConfig)
	}
}
