package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/fully-booked", h.FullyBooked)
		group.POST("/quote", h.Quote)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)

		group.POST("/:id/confirm", h.Confirm)
		group.POST("/:id/issue", h.Issue)
		group.POST("/:id/complete", h.Complete)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/no-show", h.NoShow)
		group.POST("/:id/restore", h.Restore)
		group.POST("/:id/reschedule", h.Reschedule)
	}
}
