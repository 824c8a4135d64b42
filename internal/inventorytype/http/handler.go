package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Andrej19990506/supboard-booking-backend/internal/inventorytype"
	"github.com/Andrej19990506/supboard-booking-backend/internal/pkg/response"
)

// Icon uploads larger than this are rejected before decoding.
const maxIconUploadBytes = 5 << 20

type Handler struct {
	service inventorytype.Service
}

func NewHandler(service inventorytype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	filter := inventorytype.Filter{
		ActiveOnly: activeOnly,
		Page:       page,
		PageSize:   pageSize,
	}

	types, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list inventory types"})
		return
	}

	items := make([]InventoryTypeResponse, len(types))
	for i, it := range types {
		items[i] = NewInventoryTypeResponse(it)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == inventorytype.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get inventory type"})
		return
	}

	c.JSON(http.StatusOK, NewInventoryTypeResponse(it))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateInventoryTypeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	it, err := h.service.Create(c.Request.Context(), inventorytype.CreateRequest{
		Name:        body.Name,
		DisplayName: body.DisplayName,
		Stock:       body.Stock,
	})
	if err != nil {
		switch err {
		case inventorytype.ErrNameRequired, inventorytype.ErrInvalidStock:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case inventorytype.ErrNameTaken:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create inventory type"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewInventoryTypeResponse(it))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateInventoryTypeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	it, err := h.service.Update(c.Request.Context(), id, inventorytype.UpdateRequest{
		Name:        body.Name,
		DisplayName: body.DisplayName,
		IsActive:    body.IsActive,
		Stock:       body.Stock,
	})
	if err != nil {
		switch err {
		case inventorytype.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case inventorytype.ErrNameRequired, inventorytype.ErrInvalidStock:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case inventorytype.ErrNameTaken:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update inventory type"})
		}
		return
	}

	c.JSON(http.StatusOK, NewInventoryTypeResponse(it))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == inventorytype.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete inventory type"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) UploadIcon(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("icon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "icon file is required"})
		return
	}
	if fileHeader.Size > maxIconUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "icon file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	it, err := h.service.SetIcon(c.Request.Context(), id, file)
	if err != nil {
		if err == inventorytype.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory type not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, NewInventoryTypeResponse(it))
}
