package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Andrej19990506/supboard-booking-backend/internal/auth"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced at the HTTP layer; the upgrade itself accepts any
	// origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades authenticated clients onto the hub.
type Handler struct {
	hub *Hub
	jwt *auth.JWTManager
	log zerolog.Logger
}

func NewHandler(hub *Hub, jwt *auth.JWTManager, log zerolog.Logger) *Handler {
	return &Handler{hub: hub, jwt: jwt, log: log}
}

// Serve handles GET /ws?token=JWT. Browsers cannot set headers on a
// websocket handshake, so the token travels in the query string.
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
		return
	}
	if _, err := h.jwt.ParseAndValidate(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.hub.ServeConn(c.Request.Context(), conn)
}

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/ws", h.Serve)
}
