package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrej19990506/supboard-booking-backend/internal/pricing"
)

type Handler struct {
	service *pricing.Service
}

func NewHandler(service *pricing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.service.GetConfig(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pricing config"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) PutConfig(c *gin.Context) {
	var cfg pricing.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.UpdateConfig(c.Request.Context(), cfg); err != nil {
		switch {
		case errors.Is(err, pricing.ErrUnknownMode),
			errors.Is(err, pricing.ErrInvalidPercent),
			errors.Is(err, pricing.ErrNegativeRate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save pricing config"})
		}
		return
	}

	c.JSON(http.StatusOK, cfg)
}
