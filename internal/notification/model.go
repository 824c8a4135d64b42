package notification

import (
	"net/http"
	"time"

	"github.com/Andrej19990506/supboard-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "notification not found")
	ErrInvalidPayload = apperror.New(http.StatusBadRequest, "invalid push payload")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Record is one stored notification. Records live in the capped Redis
// history and are mirrored to connected clients over the gateway.
type Record struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Body               string    `json:"body"`
	Icon               string    `json:"icon"`
	Badge              string    `json:"badge"`
	Tag                string    `json:"tag"`
	Type               string    `json:"type"`
	Priority           Priority  `json:"priority"`
	BookingID          string    `json:"booking_id,omitempty"`
	ClientName         string    `json:"client_name,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	RequireInteraction bool      `json:"require_interaction"`
	Timestamp          time.Time `json:"timestamp"`
	Read               bool      `json:"read"`
}

// Action is a button attached to a notification.
type Action struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}
