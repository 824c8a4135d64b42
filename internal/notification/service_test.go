package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	mu       sync.Mutex
	messages []Record
}

func (f *fakeHub) Broadcast(messageType string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := payload.(Record); ok {
		f.messages = append(f.messages, rec)
	}
}

func (f *fakeHub) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeHub) last() Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[len(f.messages)-1]
}

func newTestService(hub *fakeHub) *Service {
	return NewService(&Store{rdb: newMockCmdable()}, hub, zerolog.Nop())
}

func TestHandlePushStoresAndBroadcasts(t *testing.T) {
	hub := &fakeHub{}
	svc := newTestService(hub)

	rec, err := svc.HandlePush(context.Background(), []byte(`{"title": "hello", "body": "world"}`))
	require.NoError(t, err)
	require.Equal(t, 1, hub.count())

	stored, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, rec.ID, stored[0].ID)
}

func TestHandlePushUrgentRepeatsWhenUnacked(t *testing.T) {
	prev := repeatDelay
	repeatDelay = 20 * time.Millisecond
	defer func() { repeatDelay = prev }()

	hub := &fakeHub{}
	svc := newTestService(hub)

	_, err := svc.HandlePush(context.Background(), []byte(`{"body": "come now", "data": {"priority": "urgent"}}`))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.count() == 2 }, time.Second, 5*time.Millisecond)

	repeat := hub.last()
	require.Contains(t, repeat.Body, "come now")
	require.Contains(t, repeat.Body, "repeated reminder")
	require.Contains(t, repeat.Tag, "-repeat")
}

func TestHandlePushHighPriorityRepeatsWhenUnacked(t *testing.T) {
	prev := repeatDelay
	repeatDelay = 20 * time.Millisecond
	defer func() { repeatDelay = prev }()

	hub := &fakeHub{}
	svc := newTestService(hub)

	_, err := svc.HandlePush(context.Background(), []byte(`{"body": "return due", "data": {"priority": "high"}}`))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.count() == 2 }, time.Second, 5*time.Millisecond)
	require.Contains(t, hub.last().Body, "repeated reminder")
}

func TestHandlePushMediumPriorityDoesNotRepeat(t *testing.T) {
	prev := repeatDelay
	repeatDelay = 20 * time.Millisecond
	defer func() { repeatDelay = prev }()

	hub := &fakeHub{}
	svc := newTestService(hub)

	_, err := svc.HandlePush(context.Background(), []byte(`{"body": "fyi"}`))
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, 1, hub.count())
}

func TestHandlePushUrgentAckSuppressesRepeat(t *testing.T) {
	prev := repeatDelay
	repeatDelay = 30 * time.Millisecond
	defer func() { repeatDelay = prev }()

	hub := &fakeHub{}
	svc := newTestService(hub)

	rec, err := svc.HandlePush(context.Background(), []byte(`{"data": {"priority": "urgent"}}`))
	require.NoError(t, err)
	svc.Ack(rec.ID)

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, 1, hub.count())
}

func TestHandleActionWithoutTransition(t *testing.T) {
	hub := &fakeHub{}
	svc := newTestService(hub)

	route, err := svc.HandleAction(context.Background(), "contact", "b-1", "+7900")
	require.NoError(t, err)
	require.Equal(t, "tel:+7900", route.URL)

	// No booking wired, no outcome notification.
	require.Equal(t, 0, hub.count())
}
