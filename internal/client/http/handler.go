package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Andrej19990506/supboard-booking-backend/internal/client"
	"github.com/Andrej19990506/supboard-booking-backend/internal/pkg/response"
)

type Handler struct {
	service client.Service
}

func NewHandler(service client.Service) *Handler {
	return &Handler{service: service}
}

// Search powers the booking form autocomplete: ?q=<name or phone prefix>.
func (h *Handler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := client.Filter{
		Query:    c.Query("q"),
		VIPOnly:  c.DefaultQuery("vip_only", "false") == "true",
		Page:     page,
		PageSize: pageSize,
	}

	clients, total, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search clients"})
		return
	}

	items := make([]ClientResponse, len(clients))
	for i, cl := range clients {
		items[i] = NewClientResponse(cl)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == client.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get client"})
		return
	}

	c.JSON(http.StatusOK, NewClientResponse(cl))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateClientBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cl, err := h.service.Create(c.Request.Context(), client.CreateRequest{
		Name:    body.Name,
		Phone:   body.Phone,
		IsVIP:   body.IsVIP,
		Comment: body.Comment,
	})
	if err != nil {
		switch err {
		case client.ErrNameRequired, client.ErrPhoneRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case client.ErrPhoneTaken:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewClientResponse(cl))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateClientBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cl, err := h.service.Update(c.Request.Context(), id, client.UpdateRequest{
		Name:    body.Name,
		Phone:   body.Phone,
		IsVIP:   body.IsVIP,
		Comment: body.Comment,
	})
	if err != nil {
		switch err {
		case client.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case client.ErrNameRequired, client.ErrPhoneRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case client.ErrPhoneTaken:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update client"})
		}
		return
	}

	c.JSON(http.StatusOK, NewClientResponse(cl))
}
