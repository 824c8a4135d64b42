package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Andrej19990506/supboard-booking-backend/internal/notification"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

// Message types exchanged with clients.
const (
	MsgClientReady         = "CLIENT_READY"
	MsgSwReady             = "SW_READY"
	MsgLoadNotifications   = "LOAD_NOTIFICATIONS"
	MsgNotificationsLoaded = "NOTIFICATIONS_LOADED"
	MsgSyncNotifications   = "SYNC_NOTIFICATIONS"
	MsgSyncCompleted       = "SYNC_COMPLETED"
	MsgNotificationAck     = "NOTIFICATION_ACK"
	MsgSkipWaiting         = "SKIP_WAITING"
	MsgGetVersion          = "GET_VERSION"
	MsgVersion             = "VERSION"
	MsgError               = "ERROR"
)

// Message is the wire envelope for both directions.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// NotificationBackend is the notification surface the gateway exposes to
// clients.
type NotificationBackend interface {
	List(ctx context.Context) ([]notification.Record, error)
	Reconcile(ctx context.Context, keepIDs []string) (int, error)
	Ack(id string)
}

type connection struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *connection) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		// Client too slow; drop the message rather than block the hub.
		return false
	}
}

type handlerFunc func(ctx context.Context, c *connection, payload json.RawMessage)

// Hub tracks connected clients and dispatches their messages. Each message
// type has exactly one handler in the dispatch table.
type Hub struct {
	backend  NotificationBackend
	version  string
	log      zerolog.Logger
	handlers map[string]handlerFunc

	mu    sync.RWMutex
	conns map[*connection]struct{}
}

func NewHub(backend NotificationBackend, version string, log zerolog.Logger) *Hub {
	h := &Hub{
		backend: backend,
		version: version,
		log:     log,
		conns:   make(map[*connection]struct{}),
	}
	h.handlers = h.dispatchTable()
	return h
}

func (h *Hub) dispatchTable() map[string]handlerFunc {
	return map[string]handlerFunc{
		MsgClientReady:       h.handleClientReady,
		MsgLoadNotifications: h.handleLoadNotifications,
		MsgSyncNotifications: h.handleSyncNotifications,
		MsgNotificationAck:   h.handleAck,
		MsgSkipWaiting:       h.handleSkipWaiting,
		MsgGetVersion:        h.handleGetVersion,
	}
}

// SetBackend wires the notification service after construction, breaking
// the cycle between the hub and the service broadcasting through it.
func (h *Hub) SetBackend(backend NotificationBackend) {
	h.backend = backend
}

// Broadcast sends a message to every connected client. Best effort: a slow
// or broken client never blocks the others.
func (h *Hub) Broadcast(messageType string, payload any) {
	data, err := json.Marshal(outMessage{Type: messageType, Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Str("type", messageType).Msg("encode broadcast failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns {
		if !c.enqueue(data) {
			h.log.Warn().Str("type", messageType).Msg("dropped broadcast to slow client")
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
		close(c.send)
	}
}

// ServeConn runs the read loop for an upgraded connection, blocking until
// the client disconnects.
func (h *Hub) ServeConn(ctx context.Context, conn *websocket.Conn) {
	c := &connection{
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(ctx, c)
}

func (h *Hub) readPump(ctx context.Context, c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Msg("gateway client read failed")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.sendTo(c, MsgError, map[string]string{"error": "invalid message"})
			continue
		}

		handler, ok := h.handlers[msg.Type]
		if !ok {
			h.sendTo(c, MsgError, map[string]string{"error": "unknown message type: " + msg.Type})
			continue
		}
		handler(ctx, c, msg.Payload)
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) sendTo(c *connection, messageType string, payload any) {
	data, err := json.Marshal(outMessage{Type: messageType, Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Str("type", messageType).Msg("encode message failed")
		return
	}
	c.enqueue(data)
}

func (h *Hub) handleClientReady(_ context.Context, c *connection, _ json.RawMessage) {
	h.sendTo(c, MsgSwReady, map[string]string{"version": h.version})
}

func (h *Hub) handleLoadNotifications(ctx context.Context, c *connection, _ json.RawMessage) {
	records, err := h.backend.List(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("load notifications failed")
		h.sendTo(c, MsgError, map[string]string{"error": "failed to load notifications"})
		return
	}
	h.sendTo(c, MsgNotificationsLoaded, map[string]any{"notifications": records})
}

func (h *Hub) handleSyncNotifications(ctx context.Context, c *connection, payload json.RawMessage) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		h.sendTo(c, MsgError, map[string]string{"error": "invalid sync payload"})
		return
	}

	removed, err := h.backend.Reconcile(ctx, body.IDs)
	if err != nil {
		h.log.Error().Err(err).Msg("sync notifications failed")
		h.sendTo(c, MsgError, map[string]string{"error": "failed to sync notifications"})
		return
	}
	h.sendTo(c, MsgSyncCompleted, map[string]int{"removed": removed})
}

func (h *Hub) handleAck(_ context.Context, _ *connection, payload json.RawMessage) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.ID == "" {
		return
	}
	h.backend.Ack(body.ID)
}

func (h *Hub) handleSkipWaiting(_ context.Context, c *connection, _ json.RawMessage) {
	// Nothing to activate server-side; acknowledge so the client can
	// reload immediately.
	h.sendTo(c, MsgVersion, map[string]string{"version": h.version})
}

func (h *Hub) handleGetVersion(_ context.Context, c *connection, _ json.RawMessage) {
	h.sendTo(c, MsgVersion, map[string]string{"version": h.version})
}
