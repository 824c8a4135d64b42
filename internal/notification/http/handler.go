package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Andrej19990506/supboard-booking-backend/internal/notification"
	"github.com/Andrej19990506/supboard-booking-backend/internal/pkg/response"
)

const maxPushPayloadBytes = 64 << 10

type Handler struct {
	service *notification.Service
}

func NewHandler(service *notification.Service) *Handler {
	return &Handler{service: service}
}

// Push ingests a raw push payload, stores it and mirrors it to connected
// clients.
func (h *Handler) Push(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPushPayloadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	rec, err := h.service.HandlePush(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, ListResponse{Notifications: records, Total: len(records)})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Sync prunes the server-side history down to the ids the client still
// has. One-way: nothing is ever added back.
func (h *Handler) Sync(c *gin.Context) {
	var body SyncBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	removed, err := h.service.Reconcile(c.Request.Context(), body.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync notifications"})
		return
	}

	c.JSON(http.StatusOK, SyncResponse{Removed: removed})
}

// Action executes a notification button press. The booking transition
// outcome travels in the response body; the HTTP status stays 200 so the
// client can still navigate to the returned URL.
func (h *Handler) Action(c *gin.Context) {
	var body ActionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	route, err := h.service.HandleAction(c.Request.Context(), body.Action, body.BookingID, body.Phone)

	resp := ActionResponse{URL: route.URL, Applied: route.Transition}
	if err != nil {
		resp.Error = err.Error()
		resp.Applied = ""
	}

	c.JSON(http.StatusOK, resp)
}
