package gateway

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Andrej19990506/supboard-booking-backend/internal/notification"
)

type fakeBackend struct {
	records   []notification.Record
	reconcile []string
	removed   int
	acked     []string
	listErr   error
}

func (f *fakeBackend) List(context.Context) ([]notification.Record, error) {
	return f.records, f.listErr
}

func (f *fakeBackend) Reconcile(_ context.Context, keepIDs []string) (int, error) {
	f.reconcile = keepIDs
	return f.removed, nil
}

func (f *fakeBackend) Ack(id string) {
	f.acked = append(f.acked, id)
}

func newTestConn() *connection {
	return &connection{send: make(chan []byte, 8)}
}

func receive(t *testing.T, c *connection) Message {
	t.Helper()
	select {
	case raw := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHandleClientReady(t *testing.T) {
	hub := NewHub(&fakeBackend{}, "1.4.2", zerolog.Nop())
	c := newTestConn()

	hub.handleClientReady(context.Background(), c, nil)

	msg := receive(t, c)
	require.Equal(t, MsgSwReady, msg.Type)
	require.Contains(t, string(msg.Payload), "1.4.2")
}

func TestHandleLoadNotifications(t *testing.T) {
	backend := &fakeBackend{records: []notification.Record{{ID: "n-1", Title: "hi"}}}
	hub := NewHub(backend, "1", zerolog.Nop())
	c := newTestConn()

	hub.handleLoadNotifications(context.Background(), c, nil)

	msg := receive(t, c)
	require.Equal(t, MsgNotificationsLoaded, msg.Type)
	require.Contains(t, string(msg.Payload), "n-1")
}

func TestHandleSyncNotifications(t *testing.T) {
	backend := &fakeBackend{removed: 2}
	hub := NewHub(backend, "1", zerolog.Nop())
	c := newTestConn()

	hub.handleSyncNotifications(context.Background(), c, json.RawMessage(`{"ids": ["a", "b"]}`))

	msg := receive(t, c)
	require.Equal(t, MsgSyncCompleted, msg.Type)
	require.Equal(t, []string{"a", "b"}, backend.reconcile)
	require.Contains(t, string(msg.Payload), `"removed":2`)
}

func TestHandleAck(t *testing.T) {
	backend := &fakeBackend{}
	hub := NewHub(backend, "1", zerolog.Nop())

	hub.handleAck(context.Background(), nil, json.RawMessage(`{"id": "n-9"}`))
	require.Equal(t, []string{"n-9"}, backend.acked)

	// Malformed payloads are ignored.
	hub.handleAck(context.Background(), nil, json.RawMessage(`{}`))
	require.Len(t, backend.acked, 1)
}

func TestHandleGetVersion(t *testing.T) {
	hub := NewHub(&fakeBackend{}, "2.0.0", zerolog.Nop())
	c := newTestConn()

	hub.handleGetVersion(context.Background(), c, nil)

	msg := receive(t, c)
	require.Equal(t, MsgVersion, msg.Type)
	require.Contains(t, string(msg.Payload), "2.0.0")
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub(&fakeBackend{}, "1", zerolog.Nop())

	first := newTestConn()
	second := newTestConn()
	hub.register(first)
	hub.register(second)
	require.Equal(t, 2, hub.ClientCount())

	hub.Broadcast("PUSH_NOTIFICATION", map[string]string{"id": "n-1"})

	for _, c := range []*connection{first, second} {
		msg := receive(t, c)
		require.Equal(t, "PUSH_NOTIFICATION", msg.Type)
	}
}

func TestBroadcastSkipsSlowClient(t *testing.T) {
	hub := NewHub(&fakeBackend{}, "1", zerolog.Nop())

	slow := &connection{send: make(chan []byte)}
	ok := newTestConn()
	hub.register(slow)
	hub.register(ok)

	// The unbuffered client cannot accept the message; the other still
	// receives it.
	hub.Broadcast("PUSH_NOTIFICATION", map[string]string{"id": "n-1"})

	msg := receive(t, ok)
	require.Equal(t, "PUSH_NOTIFICATION", msg.Type)
}

func TestDispatchTableCoversEveryMessageType(t *testing.T) {
	hub := NewHub(&fakeBackend{}, "1", zerolog.Nop())

	for _, msgType := range []string{
		MsgClientReady, MsgLoadNotifications, MsgSyncNotifications,
		MsgNotificationAck, MsgSkipWaiting, MsgGetVersion,
	} {
		require.Contains(t, hub.handlers, msgType)
	}
}
