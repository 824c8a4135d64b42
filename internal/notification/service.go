package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Andrej19990506/supboard-booking-backend/internal/booking"
)

// MessagePush is the gateway message type carrying a notification record.
const MessagePush = "PUSH_NOTIFICATION"

// repeatDelay is how long an urgent notification waits for an
// acknowledgement before it is re-broadcast once. Variable so tests can
// shorten the wait.
var repeatDelay = 5 * time.Second

// Broadcaster fans a message out to every connected client. Delivery is
// best effort; implementations log and continue on per-client failure.
type Broadcaster interface {
	Broadcast(messageType string, payload any)
}

// BookingActions is the slice of the booking service reachable from
// notification buttons.
type BookingActions interface {
	Confirm(ctx context.Context, id string) (*booking.Booking, error)
	Cancel(ctx context.Context, id string) (*booking.Booking, error)
	Issue(ctx context.Context, id string) (*booking.Booking, error)
	Complete(ctx context.Context, id string) (*booking.Booking, error)
}

type Service struct {
	store *Store
	hub   Broadcaster
	log   zerolog.Logger

	// bookings is wired after construction; the booking service itself
	// emits events through this service.
	bookings BookingActions

	mu      sync.Mutex
	unacked map[string]bool
}

func NewService(store *Store, hub Broadcaster, log zerolog.Logger) *Service {
	return &Service{
		store:   store,
		hub:     hub,
		log:     log,
		unacked: make(map[string]bool),
	}
}

// SetBookingActions breaks the construction cycle between the booking
// service and this one.
func (s *Service) SetBookingActions(bookings BookingActions) {
	s.bookings = bookings
}

// HandlePush persists an incoming push payload and mirrors it to every
// connected client. Urgent notifications that stay unacknowledged for
// repeatDelay are re-broadcast once with a repeat marker; the timer is
// fire-and-forget.
func (s *Service) HandlePush(ctx context.Context, raw []byte) (*Record, error) {
	rec, _, err := ParsePayload(raw)
	if err != nil {
		return nil, err
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		s.log.Error().Err(err).Str("notification_id", rec.ID).Msg("store push notification failed")
		return nil, err
	}

	s.hub.Broadcast(MessagePush, rec)

	// High and urgent both require interaction; if nobody acknowledges in
	// time the notification is shown again.
	if rec.Priority == PriorityUrgent || rec.Priority == PriorityHigh {
		s.scheduleRepeat(rec)
	}

	return &rec, nil
}

func (s *Service) scheduleRepeat(rec Record) {
	s.mu.Lock()
	s.unacked[rec.ID] = true
	s.mu.Unlock()

	time.AfterFunc(repeatDelay, func() {
		s.mu.Lock()
		pending := s.unacked[rec.ID]
		delete(s.unacked, rec.ID)
		s.mu.Unlock()
		if !pending {
			return
		}

		repeat := rec
		repeat.Body = rec.Body + " (repeated reminder)"
		repeat.Tag = rec.Tag + "-repeat"
		s.hub.Broadcast(MessagePush, repeat)
	})
}

// Ack marks an urgent notification as seen by some client, suppressing
// the pending re-broadcast.
func (s *Service) Ack(id string) {
	s.mu.Lock()
	delete(s.unacked, id)
	s.mu.Unlock()
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.store.ReadAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.store.MarkRead(ctx, id)
}

func (s *Service) Reconcile(ctx context.Context, keepIDs []string) (int, error) {
	return s.store.Reconcile(ctx, keepIDs)
}

// HandleAction executes a notification button press: resolve the route,
// apply the booking transition when the action carries one, and store a
// local notification reporting the outcome. Failures are reported, never
// retried.
func (s *Service) HandleAction(ctx context.Context, actionID, bookingID, phone string) (Route, error) {
	route := RouteAction(actionID, bookingID, phone)
	if route.Transition == "" || s.bookings == nil {
		return route, nil
	}

	var err error
	switch route.Transition {
	case TransitionConfirm:
		_, err = s.bookings.Confirm(ctx, bookingID)
	case TransitionCancel:
		_, err = s.bookings.Cancel(ctx, bookingID)
	case TransitionIssue:
		_, err = s.bookings.Issue(ctx, bookingID)
	case TransitionComplete:
		_, err = s.bookings.Complete(ctx, bookingID)
	}

	outcome := Record{
		ID:        uuid.NewString(),
		Title:     "Action completed",
		Body:      fmt.Sprintf("Booking %s: %s applied", bookingID, route.Transition),
		Icon:      defaultIcon,
		Type:      "action_result",
		Priority:  PriorityLow,
		BookingID: bookingID,
		Timestamp: nowUTC(),
	}
	if err != nil {
		outcome.Title = "Action failed"
		outcome.Body = fmt.Sprintf("Booking %s: %s failed: %v", bookingID, route.Transition, err)
		outcome.Priority = PriorityMedium
	}

	if storeErr := s.store.Insert(ctx, outcome); storeErr != nil {
		s.log.Error().Err(storeErr).Msg("store action outcome failed")
	}
	s.hub.Broadcast(MessagePush, outcome)

	return route, err
}

// BookingEvent implements the booking service's notifier. Failures are
// logged and swallowed: a lost notification never fails a booking.
func (s *Service) BookingEvent(ctx context.Context, b *booking.Booking, event string) {
	rec, ok := recordForEvent(b, event)
	if !ok {
		return
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		s.log.Error().Err(err).Str("booking_id", b.ID).Str("event", event).Msg("store booking notification failed")
		return
	}
	s.hub.Broadcast(MessagePush, rec)
}

func recordForEvent(b *booking.Booking, event string) (Record, bool) {
	var title, body string
	priority := PriorityMedium

	when := b.StartTime.Format("02.01 15:04")
	switch event {
	case booking.EventCreated:
		title = "New booking"
		body = fmt.Sprintf("%s, %s, %d units", b.ClientName, when, b.TotalUnits())
	case booking.EventConfirmed:
		title = "Booking confirmed"
		body = fmt.Sprintf("%s, %s", b.ClientName, when)
	case booking.EventIssued:
		title = "Inventory issued"
		body = fmt.Sprintf("%s took %d units", b.ClientName, b.TotalUnits())
	case booking.EventCompleted:
		title = "Inventory returned"
		body = fmt.Sprintf("%s returned %d units", b.ClientName, b.TotalUnits())
		priority = PriorityLow
	case booking.EventCancelled:
		title = "Booking cancelled"
		body = fmt.Sprintf("%s, %s", b.ClientName, when)
	case booking.EventNoShow:
		title = "Client no-show"
		body = fmt.Sprintf("%s did not arrive for %s", b.ClientName, when)
		priority = PriorityHigh
	case booking.EventRescheduled:
		title = "Booking rescheduled"
		body = fmt.Sprintf("%s moved to %s", b.ClientName, when)
	case booking.EventRestored:
		title = "Booking restored"
		body = fmt.Sprintf("%s, %s", b.ClientName, when)
	case booking.EventUpdated:
		// Routine edits are too noisy to notify about.
		return Record{}, false
	default:
		return Record{}, false
	}

	return Record{
		ID:                 uuid.NewString(),
		Title:              title,
		Body:               body,
		Icon:               defaultIcon,
		Badge:              defaultBadge,
		Tag:                "booking-" + b.ID,
		Type:               "booking_" + event,
		Priority:           priority,
		BookingID:          b.ID,
		ClientName:         b.ClientName,
		Phone:              b.ClientPhone,
		RequireInteraction: priority == PriorityHigh || priority == PriorityUrgent,
		Timestamp:          nowUTC(),
	}, true
}
